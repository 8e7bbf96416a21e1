package handlers

import (
	"io"
	"net/http"
	"strconv"

	"github.com/justfortestingnothibghere/DataForge-Cloud/models"
	"github.com/justfortestingnothibghere/DataForge-Cloud/services"
	"github.com/justfortestingnothibghere/DataForge-Cloud/utils"

	"github.com/gin-gonic/gin"
)

func CreateUpload(c *gin.Context) {
	in := services.CreateUploadInput{
		Kind:    models.UploadKind(c.PostForm("type")),
		Content: c.PostForm("content"),
		Share:   c.PostForm("share") == "true" || c.PostForm("share") == "1",
	}
	if ttl := c.PostForm("ttl_hours"); ttl != "" {
		n, err := strconv.Atoi(ttl)
		if err != nil || n < 1 {
			utils.Error(c, http.StatusBadRequest, "ttl_hours must be a positive integer")
			return
		}
		in.TTLHours = n
	}

	// The whole payload is buffered before any check; uploads are
	// whole-file and synchronous.
	if header, err := c.FormFile("file"); err == nil {
		f, err := header.Open()
		if err != nil {
			utils.Error(c, http.StatusBadRequest, "failed to read file")
			return
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			utils.Error(c, http.StatusBadRequest, "failed to read file")
			return
		}
		in.FileName = header.Filename
		in.Data = data
	}

	out, err := getServices().Upload.Create(c.Request.Context(), c.GetUint("user_id"), in)
	if respondServiceError(c, err) {
		return
	}
	utils.Success(c, out)
}

// GetUploadV2 is the machine-facing read path. Identity comes from the
// API key alone; the key's owner must match the username in the URL.
func GetUploadV2(c *gin.Context) {
	user := c.MustGet("api_user").(models.User)
	if user.Username != c.Param("username") {
		utils.Error(c, http.StatusForbidden, "access denied")
		return
	}

	uploadID, err := strconv.ParseUint(c.Query("uploads"), 10, 64)
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "uploads query parameter is required")
		return
	}

	out, err := getServices().Upload.GetForOwner(c.Request.Context(), user, uint(uploadID))
	if respondServiceError(c, err) {
		return
	}
	utils.Success(c, out)
}

func GetShared(c *gin.Context) {
	uploadID, err := strconv.ParseUint(c.Param("item_id"), 10, 64)
	if err != nil {
		utils.Error(c, http.StatusNotFound, "share link invalid or expired")
		return
	}

	out, err := getServices().Share.Redeem(c.Request.Context(), uint(uploadID), c.Query("token"))
	if respondServiceError(c, err) {
		return
	}

	if out.Inline {
		utils.Success(c, gin.H{"content": out.Content})
		return
	}
	c.FileAttachment(out.AbsPath, out.DownloadName)
}

func DeleteUpload(c *gin.Context) {
	uploadID, err := strconv.ParseUint(c.Param("item_id"), 10, 64)
	if err != nil {
		utils.Error(c, http.StatusNotFound, "upload not found")
		return
	}

	if err := getServices().Upload.Delete(c.Request.Context(), c.GetUint("user_id"), uint(uploadID)); respondServiceError(c, err) {
		return
	}
	utils.Success(c, gin.H{"success": true})
}

func GetAnalytics(c *gin.Context) {
	out, err := getServices().Upload.AnalyticsSummary(c.Request.Context(), c.GetUint("user_id"))
	if respondServiceError(c, err) {
		return
	}
	utils.Success(c, out)
}

func ExportData(c *gin.Context) {
	archive, err := getServices().Upload.Export(c.Request.Context(), c.GetUint("user_id"))
	if respondServiceError(c, err) {
		return
	}
	c.Header("Content-Disposition", `attachment; filename="dataforge_export.zip"`)
	c.Data(http.StatusOK, "application/zip", archive)
}
