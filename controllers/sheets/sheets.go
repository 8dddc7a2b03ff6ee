// Package sheets streams xlsx workbooks as downloads.
package sheets

import (
	"github.com/gin-gonic/gin"
	"github.com/glamourcosmetics/storefront-api/apperr"
	"github.com/tealeg/xlsx"
)

const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Header adds a row of column titles.
func Header(sheet *xlsx.Sheet, titles ...string) {
	row := sheet.AddRow()
	for _, t := range titles {
		row.AddCell().SetValue(t)
	}
}

func Write(c *gin.Context, file *xlsx.File, filename string) {
	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Header("Content-Type", ContentType)
	c.Header("Content-Transfer-Encoding", "binary")
	c.Header("Expires", "0")

	if err := file.Write(c.Writer); err != nil {
		apperr.Respond(c, apperr.Wrap(err, "write "+filename))
	}
}
