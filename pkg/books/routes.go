package books

import (
	"github.com/labstack/echo/v4"
	"github.com/uptrace/bun"
)

// RegisterRoutesWithGroup registers book routes on a pre-configured group.
func RegisterRoutesWithGroup(g *echo.Group, db *bun.DB) {
	h := &handler{
		bookService: NewService(db),
	}

	g.GET("", h.list)
	g.GET("/export.csv", h.exportCSV)
	g.GET("/:id", h.retrieve)
	g.GET("/:id/provenance", h.retrieveProvenance)
	g.POST("/:id", h.update)
}
