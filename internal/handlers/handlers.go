package handlers

import (
	"github.com/go-playground/validator/v10"
	"github.com/s/elearning/internal/logger"
	"github.com/s/elearning/internal/services"
	"gorm.io/gorm"
)

type Handler struct {
	Svc      *services.Services
	DB       *gorm.DB
	Log      *logger.Logger
	validate *validator.Validate
}

func NewHandler(svc *services.Services, db *gorm.DB, baseLog *logger.Logger) *Handler {
	return &Handler{
		Svc:      svc,
		DB:       db,
		Log:      baseLog.With("component", "http"),
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}
