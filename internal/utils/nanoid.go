package utils

import gonanoid "github.com/matoous/go-nanoid/v2"

const batchIDAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

// NewBatchID генерирует id пакета, пригодный для имени объекта в хранилище.
func NewBatchID() (string, error) {
	return gonanoid.Generate(batchIDAlphabet, 16)
}

// BatchObjectKey — имя объекта с исходным XML пакета.
func BatchObjectKey(batchID string) string {
	return "items/" + batchID + ".xml"
}
