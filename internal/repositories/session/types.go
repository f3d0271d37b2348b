package session

import "github.com/AJV009/oracle11/internal/models"

type SaveSessionInput struct {
	Session *models.Session
}

type GetSessionInput struct {
	Token string
}

type DeleteSessionInput struct {
	Token string
}
