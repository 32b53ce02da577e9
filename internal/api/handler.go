package api

import (
	"context"

	"github.com/pjdesenvolvedor-coder/CRM-SISTEMA/internal/cache"
	"github.com/pjdesenvolvedor-coder/CRM-SISTEMA/internal/gateway"
	"github.com/pjdesenvolvedor-coder/CRM-SISTEMA/internal/services"
	"github.com/pjdesenvolvedor-coder/CRM-SISTEMA/internal/worker"
)

type Handler struct {
	clientService     services.ClientService
	noteService       services.NoteService
	scheduleService   services.ScheduleService
	automationService services.AutomationService
	feed              cache.NotificationCache
	gateway           gateway.Gateway
	jobs              map[string]*worker.JobManager
	appCtx            context.Context
}

func NewHandler(
	clientService services.ClientService,
	noteService services.NoteService,
	scheduleService services.ScheduleService,
	automationService services.AutomationService,
	feed cache.NotificationCache,
	gw gateway.Gateway,
	jobs map[string]*worker.JobManager,
	appCtx context.Context,
) *Handler {
	return &Handler{
		clientService:     clientService,
		noteService:       noteService,
		scheduleService:   scheduleService,
		automationService: automationService,
		feed:              feed,
		gateway:           gw,
		jobs:              jobs,
		appCtx:            appCtx,
	}
}
