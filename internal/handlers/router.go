package handlers

import (
	"github.com/gin-gonic/gin"
)

// Deps — всё, что нужно маршрутам. Gateway обязателен.
type Deps struct {
	Gateway interface {
		Pinger
		UserStore
		ItemStore
	}
	Ingest IngestOptions
}

// Register навешивает маршруты API на роутер.
func Register(r gin.IRouter, d Deps) {
	r.GET("/", Root())
	r.GET("/health", Health(d.Gateway))

	r.GET("/users", ListUsers(d.Gateway))
	r.POST("/users", CreateUser(d.Gateway))

	r.GET("/items", ListItems(d.Gateway))
	r.POST("/items/xml", IngestItemsXML(d.Gateway, d.Ingest))
	if d.Ingest.Log != nil {
		r.GET("/items/xml/batches", ListIngestBatches(d.Ingest.Log, d.Ingest.Archive))
	}
}
