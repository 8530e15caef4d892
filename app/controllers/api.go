package controllers

import (
	"github.com/DedS3t/speculation-backend/platform/sessions"
	"github.com/go-pg/pg/v10"
)

// API carries what the HTTP handlers share.
type API struct {
	DB       *pg.DB
	Sessions *sessions.Registry
	Secret   []byte
}
