package http

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"sort"

	"github.com/gorilla/schema"
	"go.uber.org/zap"

	"travelinsure/ml"
)

//go:embed templates/index.html
var templateFS embed.FS

var pageTemplate = template.Must(template.ParseFS(templateFS, "templates/index.html"))

// pageData 页面渲染数据
type pageData struct {
	Title             string
	Form              predictForm
	EmploymentChoices []string
	AnswerChoices     []string
	MinIncome         int
	MaxIncome         int
	Errors            []string
	Result            string
}

func newPageData(form predictForm) pageData {
	return pageData{
		Title:             "Insure Your Travel: AI-Powered Prediction",
		Form:              form,
		EmploymentChoices: []string{ml.EmploymentGovernment, ml.EmploymentPrivate},
		AnswerChoices:     []string{ml.AnswerYes, ml.AnswerNo},
		MinIncome:         ml.MinAnnualIncome,
		MaxIncome:         ml.MaxAnnualIncome,
	}
}

func (h *Handler) handleIndex(w http.ResponseWriter, r *http.Request) {
	h.renderPage(w, http.StatusOK, newPageData(defaultForm()))
}

func (h *Handler) handleFormPredict(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.metrics.ObserveRejection()
		data := newPageData(defaultForm())
		data.Errors = []string{"could not read the submitted form"}
		h.renderPage(w, http.StatusBadRequest, data)
		return
	}

	form := defaultForm()
	if err := h.decoder.Decode(&form, r.PostForm); err != nil {
		h.metrics.ObserveRejection()
		data := newPageData(form)
		data.Errors = decodeMessages(err)
		h.renderPage(w, http.StatusBadRequest, data)
		return
	}

	record, problems := form.toRecord()
	if len(problems) > 0 {
		h.metrics.ObserveRejection()
		data := newPageData(form)
		data.Errors = problems
		h.renderPage(w, http.StatusBadRequest, data)
		return
	}

	prediction, err := h.score(r, record.record())
	data := newPageData(form)
	if err != nil {
		data.Errors = []string{"prediction failed"}
		h.renderPage(w, http.StatusInternalServerError, data)
		return
	}
	data.Result = prediction.Label
	h.renderPage(w, http.StatusOK, data)
}

func (h *Handler) renderPage(w http.ResponseWriter, status int, data pageData) {
	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, data); err != nil {
		h.logger.Error("render page", zap.Error(err))
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

func decodeMessages(err error) []string {
	var multi schema.MultiError
	if !errors.As(err, &multi) {
		return []string{err.Error()}
	}
	messages := make([]string, 0, len(multi))
	for key, fieldErr := range multi {
		var conversion schema.ConversionError
		if errors.As(fieldErr, &conversion) {
			messages = append(messages, fmt.Sprintf("%s must be a whole number", key))
			continue
		}
		messages = append(messages, fieldErr.Error())
	}
	sort.Strings(messages)
	return messages
}
