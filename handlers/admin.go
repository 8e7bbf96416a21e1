package handlers

import (
	"net/http"
	"strconv"

	"github.com/justfortestingnothibghere/DataForge-Cloud/utils"

	"github.com/gin-gonic/gin"
)

func AdminDashboard(c *gin.Context) {
	out, err := getServices().Admin.Dashboard(c.Request.Context())
	if respondServiceError(c, err) {
		return
	}
	utils.Success(c, out)
}

func AdminDeleteUser(c *gin.Context) {
	userID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid user id")
		return
	}

	if err := getServices().Admin.DeleteUser(c.Request.Context(), uint(userID)); respondServiceError(c, err) {
		return
	}
	utils.Success(c, gin.H{"success": true})
}
