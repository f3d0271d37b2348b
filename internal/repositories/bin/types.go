package bin

import "github.com/AJV009/oracle11/internal/models"

type GetLatestInput struct {
	ResourceID string
}

type UpdateInput struct {
	ResourceID string
	Document   *models.GameDocument
}
