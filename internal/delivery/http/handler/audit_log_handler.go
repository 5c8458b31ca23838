package handler

import (
	"net/http"

	"go-hospital-scheduling/internal/converter"
	"go-hospital-scheduling/internal/service"
	"go-hospital-scheduling/pkg/response"

	"github.com/sirupsen/logrus"
)

type AuditLogHandler struct {
	log          *logrus.Logger
	auditService service.AuditService
}

func NewAuditLogHandler(log *logrus.Logger, auditService service.AuditService) *AuditLogHandler {
	return &AuditLogHandler{
		log:          log,
		auditService: auditService,
	}
}

func (h *AuditLogHandler) GetAllAuditLogs(w http.ResponseWriter, r *http.Request) {
	logs, err := h.auditService.List(r.Context())
	if err != nil {
		h.log.Warnf("Failed to list audit logs: %+v", err)
		writeError(w, err, "Failed to get audit logs")
		return
	}

	response.Success(w, http.StatusOK, "Audit logs retrieved successfully", converter.AuditLogsToListResponse(logs))
}
