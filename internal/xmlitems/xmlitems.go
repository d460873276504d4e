// Package xmlitems превращает XML-документ вида
//
//	<Items><Item><Record/><Name/><Quantity/><NetPrice/></Item>...</Items>
//
// в список models.Item. Отсутствующие поля заменяются нулём или пустой
// строкой, запись при этом не отбрасывается.
package xmlitems

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/clbanning/mxj/v2"
	"github.com/shopspring/decimal"

	"countyapi/internal/models"
)

const itemsPath = "Items.Item"

var (
	// ErrInvalidXML — тело не является корректным XML.
	ErrInvalidXML = errors.New("invalid xml")
	// ErrNoItems — документ корректен, но Items.Item отсутствует.
	ErrNoItems = errors.New("no <Item> entries")
)

// FieldError — числовое поле содержит нечисловой текст.
type FieldError struct {
	Index int // с нуля
	Field string
	Value string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("Invalid <%s> value in <Item> #%d", e.Field, e.Index+1)
}

// Nodes разбирает документ и возвращает узлы Items.Item по порядку.
// Одиночный <Item> приходит как последовательность из одного узла.
func Nodes(body []byte) ([]interface{}, error) {
	if err := checkDocument(body); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidXML, err)
	}
	m, err := mxj.NewMapXml(body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidXML, err)
	}
	nodes, err := m.ValuesForPath(itemsPath)
	if err != nil || len(nodes) == 0 {
		return nil, ErrNoItems
	}
	return nodes, nil
}

// checkDocument проходит весь документ до EOF: mxj читает только первый
// корневой элемент и молча отбрасывает всё, что после него.
func checkDocument(body []byte) error {
	dec := xml.NewDecoder(bytes.NewReader(body))
	roots, depth := 0, 0
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if depth == 0 {
				roots++
				if roots > 1 {
					return errors.New("more than one root element")
				}
			}
			depth++
		case xml.EndElement:
			depth--
		case xml.CharData:
			if depth == 0 && len(bytes.TrimSpace(t)) > 0 {
				return errors.New("text outside the root element")
			}
		}
	}
	if roots == 0 {
		return errors.New("no root element")
	}
	return nil
}

// Parse разбирает документ целиком. Любая ошибка означает, что ничего
// вставлять нельзя.
func Parse(body []byte) ([]models.Item, error) {
	nodes, err := Nodes(body)
	if err != nil {
		return nil, err
	}
	items := make([]models.Item, 0, len(nodes))
	for i, n := range nodes {
		it, err := MapNode(i, n)
		if err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, nil
}

// MapNode переводит один узел <Item> в models.Item.
//
//	Record            -> целое из ведущих цифр ("1.5" -> 1, "12abc" -> 12), нет значения -> 0
//	Name              -> строка, нет значения -> ""
//	Quantity/NetPrice -> десятичное, нет значения -> 0
//
// Узел без дочерних элементов (например <Item/>) даёт запись из значений
// по умолчанию.
func MapNode(index int, node interface{}) (models.Item, error) {
	fields := asMap(node)

	var it models.Item
	if s, ok := childText(fields, "Record"); ok {
		rec, ok := leadingInt(s)
		if !ok {
			return models.Item{}, &FieldError{Index: index, Field: "Record", Value: s}
		}
		it.Record = rec
	}
	if s, ok := childText(fields, "Name"); ok {
		it.Name = s
	}
	var err error
	if it.Quantity, err = decimalField(fields, index, "Quantity"); err != nil {
		return models.Item{}, err
	}
	if it.NetPrice, err = decimalField(fields, index, "NetPrice"); err != nil {
		return models.Item{}, err
	}
	return it, nil
}

// leadingInt берёт знак и ведущие цифры; без цифр значение нечисловое.
func leadingInt(s string) (int64, bool) {
	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	start := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == start {
		return 0, false
	}
	n, err := strconv.ParseInt(s[:end], 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

func decimalField(fields map[string]interface{}, index int, name string) (decimal.Decimal, error) {
	s, ok := childText(fields, name)
	if !ok {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, &FieldError{Index: index, Field: name, Value: s}
	}
	return d, nil
}

// childText возвращает текст первого дочернего элемента name.
// Пустой элемент считается отсутствующим.
func childText(fields map[string]interface{}, name string) (string, bool) {
	if fields == nil {
		return "", false
	}
	s := strings.TrimSpace(text(fields[name]))
	return s, s != ""
}

func text(v interface{}) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case []interface{}:
		if len(t) == 0 {
			return ""
		}
		return text(t[0])
	case map[string]interface{}, mxj.Map:
		// элемент с атрибутами: текст лежит под #text
		s, _ := asMap(t)["#text"].(string)
		return s
	default:
		return fmt.Sprint(t)
	}
}

func asMap(v interface{}) map[string]interface{} {
	switch t := v.(type) {
	case map[string]interface{}:
		return t
	case mxj.Map:
		return t
	}
	return nil
}
