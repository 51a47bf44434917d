package handler

import (
	familydomain "clergy-registry-go/internal/domain/family"
	pastordomain "clergy-registry-go/internal/domain/pastor"
	relationshipdomain "clergy-registry-go/internal/domain/relationship"
	statsdomain "clergy-registry-go/internal/domain/stats"
	"clergy-registry-go/pkg/logger"
)

type Handlers struct {
	Families      *familydomain.Service
	Relationships *relationshipdomain.Service
	Pastors       *pastordomain.Service
	Stats         *statsdomain.Service
	log           logger.Logger
}

func New(families *familydomain.Service, relationships *relationshipdomain.Service, pastors *pastordomain.Service, stats *statsdomain.Service, log logger.Logger) *Handlers {
	return &Handlers{
		Families:      families,
		Relationships: relationships,
		Pastors:       pastors,
		Stats:         stats,
		log:           log,
	}
}
