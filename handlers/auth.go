package handlers

import (
	"net/http"

	"github.com/justfortestingnothibghere/DataForge-Cloud/services"
	"github.com/justfortestingnothibghere/DataForge-Cloud/utils"

	"github.com/gin-gonic/gin"
)

type SignupRequest struct {
	Name         string `json:"name" binding:"required"`
	Username     string `json:"username" binding:"required,min=3,max=50"`
	Email        string `json:"email" binding:"required,email"`
	Password     string `json:"password" binding:"required,min=6"`
	ProfilePhoto string `json:"profile_photo"`
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func Signup(c *gin.Context) {
	var req SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid request: "+err.Error())
		return
	}

	out, err := getServices().Auth.Signup(c.Request.Context(), services.SignupInput{
		Name:         req.Name,
		Username:     req.Username,
		Email:        req.Email,
		Password:     req.Password,
		ProfilePhoto: req.ProfilePhoto,
	})
	if respondServiceError(c, err) {
		return
	}
	utils.Success(c, out)
}

func Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid request: "+err.Error())
		return
	}

	out, err := getServices().Auth.Login(c.Request.Context(), services.LoginInput{
		Username: req.Username,
		Password: req.Password,
	})
	if respondServiceError(c, err) {
		return
	}
	utils.Success(c, out)
}

func Me(c *gin.Context) {
	out, err := getServices().Auth.GetProfile(c.Request.Context(), c.GetUint("user_id"))
	if respondServiceError(c, err) {
		return
	}
	utils.Success(c, out)
}

func Upgrade(c *gin.Context) {
	if err := getServices().Auth.Upgrade(c.Request.Context(), c.GetUint("user_id")); respondServiceError(c, err) {
		return
	}
	utils.Success(c, gin.H{"message": "upgraded to premium"})
}
