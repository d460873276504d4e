package handlers

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"countyapi/internal/models"
	"countyapi/internal/services/storage"
	"countyapi/internal/utils"
	"countyapi/internal/xmlitems"
)

const (
	msgInvalidXML    = "Invalid XML"
	msgNoItems       = "No valid <Item> entries found"
	msgItemsInserted = "Items inserted successfully"

	defaultXMLMaxBytes = 10 << 20
	archiveURLTTL      = 15 * time.Minute
)

type ItemStore interface {
	InsertItemsBatch(ctx context.Context, items []models.Item) (int, error)
	ListItems(ctx context.Context) ([]models.Item, error)
}

type BatchLog interface {
	Add(ctx context.Context, b models.IngestBatch) error
	Recent(ctx context.Context) ([]models.IngestBatch, error)
}

// IngestOptions — необязательные зависимости загрузки XML.
// Archive и Log могут быть nil.
type IngestOptions struct {
	MaxBytes int64
	Archive  storage.Archive
	Log      BatchLog
}

// ListItems godoc
// @Summary Список позиций
// @Tags items
// @Produce json
// @Success 200 {array} models.Item
// @Failure 500 {object} ErrorResponse
// @Router /items [get]
func ListItems(store ItemStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		items, err := store.ListItems(c.Request.Context())
		if err != nil {
			logrus.WithError(err).Warn("list items failed")
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
			return
		}
		c.JSON(http.StatusOK, items)
	}
}

// IngestItemsXML godoc
// @Summary Загрузить позиции из XML
// @Description Тело — XML вида <Items><Item><Record/><Name/><Quantity/><NetPrice/></Item>...</Items>.
// @Description Отсутствующие поля заменяются нулём или пустой строкой. Вставка без транзакции.
// @Tags items
// @Accept xml
// @Produce json
// @Param input body string true "XML-документ"
// @Success 200 {object} IngestResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /items/xml [post]
func IngestItemsXML(store ItemStore, opts IngestOptions) gin.HandlerFunc {
	maxBytes := opts.MaxBytes
	if maxBytes <= 0 {
		maxBytes = defaultXMLMaxBytes
	}
	return func(c *gin.Context) {
		if !isXMLContentType(c.ContentType()) {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: msgInvalidXML})
			return
		}
		var body []byte
		if c.Request.Body != nil {
			b, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes))
			if err != nil {
				c.JSON(http.StatusBadRequest, ErrorResponse{Error: msgInvalidXML})
				return
			}
			body = b
		}

		items, err := xmlitems.Parse(body)
		if err != nil {
			var fe *xmlitems.FieldError
			switch {
			case errors.Is(err, xmlitems.ErrInvalidXML):
				c.JSON(http.StatusBadRequest, ErrorResponse{Error: msgInvalidXML})
			case errors.Is(err, xmlitems.ErrNoItems):
				c.JSON(http.StatusBadRequest, ErrorResponse{Error: msgNoItems})
			case errors.As(err, &fe):
				c.JSON(http.StatusBadRequest, ErrorResponse{Error: fe.Error()})
			default:
				c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
			}
			return
		}

		batchID, err := utils.NewBatchID()
		if err != nil {
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "id generation failed"})
			return
		}
		logger := logrus.WithField("batch_id", batchID)

		ctx := c.Request.Context()
		inserted, err := store.InsertItemsBatch(ctx, items)
		if err != nil {
			logger.WithError(err).WithField("inserted", inserted).Warn("insert items failed")
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
			return
		}

		batch := models.IngestBatch{ID: batchID, Count: len(items), ReceivedAt: time.Now().UTC()}
		if opts.Archive != nil {
			key := utils.BatchObjectKey(batchID)
			if err := opts.Archive.Put(ctx, key, body, "application/xml"); err != nil {
				logger.WithError(err).Warn("archive xml failed")
			} else {
				batch.ArchiveKey = key
			}
		}
		if opts.Log != nil {
			if err := opts.Log.Add(ctx, batch); err != nil {
				logger.WithError(err).Warn("batch log failed")
			}
		}
		logger.WithField("count", len(items)).Info("items ingested")

		c.JSON(http.StatusOK, IngestResponse{Status: msgItemsInserted, Count: len(items), BatchID: batchID})
	}
}

// ListIngestBatches godoc
// @Summary Последние загруженные XML-пакеты
// @Description archive_url — временная ссылка на исходный документ, если архив доступен.
// @Tags items
// @Produce json
// @Success 200 {array} models.IngestBatch
// @Failure 500 {object} ErrorResponse
// @Router /items/xml/batches [get]
func ListIngestBatches(log BatchLog, archive storage.Archive) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		batches, err := log.Recent(ctx)
		if err != nil {
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
			return
		}
		if archive != nil {
			for i := range batches {
				if batches[i].ArchiveKey == "" {
					continue
				}
				url, err := archive.URL(ctx, batches[i].ArchiveKey, archiveURLTTL)
				if err != nil {
					logrus.WithError(err).WithField("batch_id", batches[i].ID).Warn("archive url failed")
					continue
				}
				batches[i].ArchiveURL = url
			}
		}
		c.JSON(http.StatusOK, batches)
	}
}

// пустой Content-Type допускается, тело всё равно читается как текст
func isXMLContentType(ct string) bool {
	switch {
	case ct == "", ct == "application/xml", ct == "text/xml":
		return true
	case strings.HasSuffix(ct, "+xml"):
		return true
	}
	return false
}
