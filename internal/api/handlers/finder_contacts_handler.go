package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Dayoung0-0/zero-to-agile-frontend/internal/pages/finder"
	"github.com/Dayoung0-0/zero-to-agile-frontend/internal/services"
)

const (
	contactsPageTitle = "받은 제안"
	detailPageTitle   = "컨택 상세"
	invalidIDMessage  = "잘못된 컨택 번호입니다."
)

// FinderContactsHandler renders the finder's contact pages.
type FinderContactsHandler struct {
	sendMessageService services.ISendMessageService
	formatter          *finder.Formatter
	renderTimeout      time.Duration
	log                *zap.Logger
}

// NewFinderContactsHandler creates a new FinderContactsHandler.
// A zero renderTimeout waits for the fetch to settle before rendering.
func NewFinderContactsHandler(sendMessageService services.ISendMessageService, formatter *finder.Formatter, renderTimeout time.Duration, log *zap.Logger) *FinderContactsHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &FinderContactsHandler{
		sendMessageService: sendMessageService,
		formatter:          formatter,
		renderTimeout:      renderTimeout,
		log:                log,
	}
}

// ListContacts handles GET /finder/contacts
func (h *FinderContactsHandler) ListContacts(c *gin.Context) {
	ctx := c.Request.Context()
	page := finder.NewContactsPage(h.sendMessageService, h.log)
	page.Mount(ctx)
	defer page.Unmount()

	var deadline <-chan time.Time
	if h.renderTimeout > 0 {
		timer := time.NewTimer(h.renderTimeout)
		defer timer.Stop()
		deadline = timer.C
	}

	select {
	case <-page.Done():
	case <-deadline:
		h.log.Debug("render deadline reached before send messages loaded")
	case <-ctx.Done():
		// Client went away; nothing to render.
		return
	}

	view := finder.BuildView(page.Snapshot(), h.formatter)
	if failure := page.Failure(); failure != nil {
		_ = c.Error(failure)
	}

	c.HTML(http.StatusOK, "contacts", gin.H{
		"Title":          contactsPageTitle,
		"Refresh":        view.IsLoading(),
		"View":           view,
		"LoadingText":    finder.LoadingText,
		"HeaderEyebrow":  finder.HeaderEyebrow,
		"HeaderTitle":    finder.HeaderTitle,
		"HeaderSubtitle": finder.HeaderSubtitle,
		"EmptyIcon":      finder.EmptyIcon,
		"EmptyTitle":     finder.EmptyTitle,
		"EmptySubtitle":  finder.EmptySubtitle,
	})
}

// GetContact handles GET /finder/contacts/:id
func (h *FinderContactsHandler) GetContact(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		h.renderError(c, http.StatusBadRequest, invalidIDMessage)
		return
	}

	detail, err := h.sendMessageService.FindSendMessageByID(c.Request.Context(), id)
	if err != nil {
		_ = c.Error(err)
		if errors.Is(err, services.ErrSendMessageNotFound) {
			h.renderError(c, http.StatusNotFound, finder.DetailNotFoundMessage)
			return
		}
		msg := finder.DetailErrorMessage
		var carrier services.MessageCarrier
		if errors.As(err, &carrier) && carrier.UserMessage() != "" {
			msg = carrier.UserMessage()
		}
		h.log.Warn("failed to load send message", zap.Int64("send_message_id", id), zap.Error(err))
		h.renderError(c, http.StatusBadGateway, msg)
		return
	}

	c.HTML(http.StatusOK, "contact_detail", gin.H{
		"Title":  detailPageTitle,
		"Detail": finder.BuildDetailView(detail, h.formatter),
	})
}

func (h *FinderContactsHandler) renderError(c *gin.Context, status int, message string) {
	c.HTML(status, "error_page", gin.H{
		"Title":   detailPageTitle,
		"Message": message,
	})
}
