package services

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"

	"countyapi/internal/models"
)

const ingestLogKey = "ingest:batches"

// IngestLog хранит в Redis последние принятые XML-пакеты.
type IngestLog struct {
	client *redis.Client
	limit  int64
}

func NewIngestLog(client *redis.Client, limit int64) *IngestLog {
	return &IngestLog{client: client, limit: limit}
}

// Add кладёт пакет в начало списка и обрезает его до limit.
func (l *IngestLog) Add(ctx context.Context, b models.IngestBatch) error {
	data, err := json.Marshal(b)
	if err != nil {
		return err
	}
	pipe := l.client.TxPipeline()
	pipe.LPush(ctx, ingestLogKey, data)
	pipe.LTrim(ctx, ingestLogKey, 0, l.limit-1)
	_, err = pipe.Exec(ctx)
	return err
}

// Recent возвращает пакеты, начиная с самого свежего.
func (l *IngestLog) Recent(ctx context.Context) ([]models.IngestBatch, error) {
	vals, err := l.client.LRange(ctx, ingestLogKey, 0, l.limit-1).Result()
	if err != nil {
		if err == redis.Nil {
			return []models.IngestBatch{}, nil
		}
		return nil, err
	}
	res := make([]models.IngestBatch, 0, len(vals))
	for _, v := range vals {
		var b models.IngestBatch
		if e := json.Unmarshal([]byte(v), &b); e == nil {
			res = append(res, b)
		}
	}
	return res, nil
}
