package handler

import (
	"Go_Mall/internal/service"
	"Go_Mall/utils"
	"net/http"

	"github.com/gin-gonic/gin"
)

// ImportProducts ingests a product CSV uploaded as multipart form data.
func ImportProducts(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		utils.FailStatus(c, http.StatusBadRequest, err)
		return
	}
	src, err := file.Open()
	if err != nil {
		utils.FailStatus(c, http.StatusBadRequest, err)
		return
	}
	defer src.Close()

	result, err := service.ImportProducts(src)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.Success(c, result)
}
