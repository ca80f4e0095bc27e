package handler

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/aebalz/vibetrack/internal/insight"
	"github.com/aebalz/vibetrack/internal/model"
	"github.com/aebalz/vibetrack/internal/service"
)

// EntryHandler serves the journal entry endpoints.
type EntryHandler struct {
	Service        service.EntryServiceInterface
	Log            zerolog.Logger
	MaxUploadBytes int64
}

// NewEntryHandler creates a new EntryHandler.
func NewEntryHandler(svc service.EntryServiceInterface, log zerolog.Logger, maxUploadBytes int64) *EntryHandler {
	return &EntryHandler{Service: svc, Log: log, MaxUploadBytes: maxUploadBytes}
}

// SaveEntryRequest is the JSON form of a check-in. Multipart requests carry
// the same fields plus an optional "image" file.
type SaveEntryRequest struct {
	Date    string `json:"date" example:"2024-05-10"`
	Energy  int    `json:"energy" example:"4"`
	Content string `json:"content" example:"Chạy bộ 5km"`
}

func (h *EntryHandler) list(ctx context.Context) (int, any) {
	entries, err := h.Service.List(ctx)
	if err != nil {
		h.Log.Error().Err(err).Msg("failed to load entries")
		return fail(err)
	}
	return list(entries)
}

// EntryView is an entry as returned by the single-day endpoint, with its
// comment split into trend and note.
type EntryView struct {
	model.JournalEntry
	InsightSections *insight.Sections `json:"insightSections,omitempty"`
}

func newEntryView(e model.JournalEntry) EntryView {
	v := EntryView{JournalEntry: e}
	if text := e.Insight(); text != "" {
		s := insight.Split(text)
		v.InsightSections = &s
	}
	return v
}

func (h *EntryHandler) get(ctx context.Context, date string) (int, any) {
	entry, err := h.Service.GetByDate(ctx, date)
	if err != nil {
		return fail(err)
	}
	return ok(newEntryView(*entry))
}

func (h *EntryHandler) save(ctx context.Context, in service.SaveInput) (int, any) {
	entry, err := h.Service.Save(ctx, in)
	if err != nil {
		h.Log.Error().Err(err).Str("date", in.Date).Msg("failed to save entry")
		return fail(err)
	}
	return http.StatusCreated, Envelope{Data: entry}
}

func (h *EntryHandler) remove(ctx context.Context, id string) (int, any) {
	if err := h.Service.Delete(ctx, id); err != nil {
		if statusFor(err) == http.StatusInternalServerError {
			h.Log.Error().Err(err).Str("id", id).Msg("failed to delete entry")
		}
		return fail(err)
	}
	return ok(map[string]string{"id": id})
}

func parseEnergy(raw string) (model.EnergyLevel, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: energy must be a number", service.ErrValidation)
	}
	return model.EnergyLevel(n), nil
}

func openImage(fh *multipart.FileHeader, limit int64) (io.ReadCloser, error) {
	if limit > 0 && fh.Size > limit {
		return nil, fmt.Errorf("%w: image exceeds %d bytes", service.ErrValidation, limit)
	}
	return fh.Open()
}

func exportFilename(contentType string) string {
	if contentType == "application/json" {
		return "vibetrack-entries.json"
	}
	return "vibetrack-entries.csv"
}

// @Summary List entries
// @Description All journal entries, newest day first.
// @Tags Entries
// @Produce json
// @Success 200 {object} Envelope{data=[]model.JournalEntry}
// @Failure 500 {object} ErrorResponse
// @Router /api/v1/entries [get]
func (h *EntryHandler) ListFiber(c *fiber.Ctx) error {
	status, body := h.list(c.UserContext())
	return c.Status(status).JSON(body)
}

func (h *EntryHandler) ListGin(c *gin.Context) {
	c.JSON(h.list(c.Request.Context()))
}

// @Summary Get the entry of a day
// @Tags Entries
// @Produce json
// @Param date path string true "Day, YYYY-MM-DD or any timestamp"
// @Success 200 {object} Envelope{data=EntryView}
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/entries/{date} [get]
func (h *EntryHandler) GetFiber(c *fiber.Ctx) error {
	status, body := h.get(c.UserContext(), c.Params("date"))
	return c.Status(status).JSON(body)
}

func (h *EntryHandler) GetGin(c *gin.Context) {
	c.JSON(h.get(c.Request.Context(), c.Param("date")))
}

// @Summary Save today's check-in
// @Description Creates the entry of the day or replaces it. Accepts JSON or multipart with an optional image.
// @Tags Entries
// @Accept json,mpfd
// @Produce json
// @Param entry body SaveEntryRequest false "Entry (JSON)"
// @Param image formData file false "Photo"
// @Success 201 {object} Envelope{data=model.JournalEntry}
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/v1/entries [post]
func (h *EntryHandler) SaveFiber(c *fiber.Ctx) error {
	var in service.SaveInput

	if strings.HasPrefix(c.Get(fiber.HeaderContentType), fiber.MIMEMultipartForm) {
		energy, err := parseEnergy(c.FormValue("energy"))
		if err != nil {
			status, body := fail(err)
			return c.Status(status).JSON(body)
		}
		in = service.SaveInput{Date: c.FormValue("date"), Energy: energy, Content: c.FormValue("content")}

		if fh, err := c.FormFile("image"); err == nil {
			f, err := openImage(fh, h.MaxUploadBytes)
			if err != nil {
				status, body := fail(err)
				return c.Status(status).JSON(body)
			}
			defer f.Close()
			in.Image = f
		}
	} else {
		var req SaveEntryRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "invalid request body"})
		}
		in = service.SaveInput{Date: req.Date, Energy: model.EnergyLevel(req.Energy), Content: req.Content}
	}

	status, body := h.save(c.UserContext(), in)
	return c.Status(status).JSON(body)
}

func (h *EntryHandler) SaveGin(c *gin.Context) {
	var in service.SaveInput

	if strings.HasPrefix(c.ContentType(), gin.MIMEMultipartPOSTForm) {
		if h.MaxUploadBytes > 0 {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.MaxUploadBytes+1<<20)
		}
		energy, err := parseEnergy(c.PostForm("energy"))
		if err != nil {
			c.JSON(fail(err))
			return
		}
		in = service.SaveInput{Date: c.PostForm("date"), Energy: energy, Content: c.PostForm("content")}

		fh, err := c.FormFile("image")
		switch {
		case err == nil:
			f, err := openImage(fh, h.MaxUploadBytes)
			if err != nil {
				c.JSON(fail(err))
				return
			}
			defer f.Close()
			in.Image = f
		case !errors.Is(err, http.ErrMissingFile):
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid multipart body"})
			return
		}
	} else {
		var req SaveEntryRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
			return
		}
		in = service.SaveInput{Date: req.Date, Energy: model.EnergyLevel(req.Energy), Content: req.Content}
	}

	c.JSON(h.save(c.Request.Context(), in))
}

// @Summary Delete an entry
// @Tags Entries
// @Produce json
// @Param id path string true "Entry id"
// @Success 200 {object} Envelope
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/entries/{id} [delete]
func (h *EntryHandler) DeleteFiber(c *fiber.Ctx) error {
	status, body := h.remove(c.UserContext(), c.Params("id"))
	return c.Status(status).JSON(body)
}

func (h *EntryHandler) DeleteGin(c *gin.Context) {
	c.JSON(h.remove(c.Request.Context(), c.Param("id")))
}

// @Summary Export entries
// @Tags Entries
// @Produce text/csv,json
// @Param format query string false "csv (default) or json"
// @Success 200 {file} file
// @Failure 400 {object} ErrorResponse
// @Router /api/v1/entries/export [get]
func (h *EntryHandler) ExportFiber(c *fiber.Ctx) error {
	data, contentType, err := h.Service.Export(c.UserContext(), c.Query("format", "csv"))
	if err != nil {
		status, body := fail(err)
		return c.Status(status).JSON(body)
	}
	c.Set(fiber.HeaderContentType, contentType)
	c.Attachment(exportFilename(contentType))
	return c.Send(data)
}

func (h *EntryHandler) ExportGin(c *gin.Context) {
	data, contentType, err := h.Service.Export(c.Request.Context(), c.DefaultQuery("format", "csv"))
	if err != nil {
		c.JSON(fail(err))
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+exportFilename(contentType)+`"`)
	c.Data(http.StatusOK, contentType, data)
}
