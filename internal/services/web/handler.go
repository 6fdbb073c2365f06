package web

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"cloud.google.com/go/civil"
	"github.com/a-h/templ"
	"golang.org/x/text/language"

	"github.com/louisbranch/hexagram/internal/oracle/seed"
	"github.com/louisbranch/hexagram/internal/platform/timeouts"
	"github.com/louisbranch/hexagram/internal/services/oracle/api/grpc/oracle"
	"github.com/louisbranch/hexagram/internal/services/oracle/app"
	weberrors "github.com/louisbranch/hexagram/internal/services/web/platform/errors"
	"github.com/louisbranch/hexagram/internal/services/web/platform/httpx"
	webi18n "github.com/louisbranch/hexagram/internal/services/web/platform/i18n"
	"github.com/louisbranch/hexagram/internal/services/web/routepath"
	"github.com/louisbranch/hexagram/internal/services/web/static"
	webtemplates "github.com/louisbranch/hexagram/internal/services/web/templates"
)

type handler struct {
	thrower Thrower
	now     func() time.Time
}

// NewHandler builds the web routes over thrower. now supplies the form's
// default date and falls back to time.Now.
func NewHandler(thrower Thrower, now func() time.Time) (http.Handler, error) {
	if thrower == nil {
		return nil, errors.New("thrower is required")
	}
	if now == nil {
		now = time.Now
	}
	h := &handler{thrower: thrower, now: now}
	readOnly := httpx.AllowMethods(http.HandlerFunc(h.methodNotAllowed), http.MethodGet, http.MethodHead)

	mux := http.NewServeMux()
	mux.Handle("/static/", readOnly(http.StripPrefix("/static/", http.FileServer(http.FS(static.FS)))))
	mux.Handle(routepath.Health, readOnly(http.HandlerFunc(handleHealth)))
	mux.Handle(routepath.About, readOnly(http.HandlerFunc(h.handleAbout)))
	mux.Handle(routepath.Throw, readOnly(http.HandlerFunc(h.handleThrow)))
	mux.Handle(routepath.ThrowText, readOnly(http.HandlerFunc(h.handleThrowText)))
	mux.Handle(routepath.Root+"{$}", readOnly(http.HandlerFunc(h.handleHome)))
	mux.Handle(routepath.Root, http.HandlerFunc(h.notFound))

	return httpx.Chain(mux,
		httpx.RequestID(),
		httpx.RecoverPanic(http.HandlerFunc(h.internalError)),
	), nil
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	_ = httpx.WriteText(w, http.StatusOK, "OK")
}

func (h *handler) handleHome(w http.ResponseWriter, r *http.Request) {
	page, _ := h.pageContext(w, r)
	query := r.URL.Query()
	params := webtemplates.HomeParams{
		Prompt: query.Get(routepath.QueryPrompt),
		AsOf:   query.Get(routepath.QueryAsOf),
	}
	if params.AsOf == "" {
		params.AsOf = seed.FormatDate(civil.DateOf(h.now()))
	}
	h.render(w, r, http.StatusOK, webtemplates.HomePage(page, params))
}

func (h *handler) handleAbout(w http.ResponseWriter, r *http.Request) {
	page, _ := h.pageContext(w, r)
	h.render(w, r, http.StatusOK, webtemplates.AboutPage(page))
}

func (h *handler) handleThrow(w http.ResponseWriter, r *http.Request) {
	page, tag := h.pageContext(w, r)
	reading, err := h.throw(r, tag)
	if err != nil {
		h.renderError(w, r, page, tag, err)
		return
	}
	h.render(w, r, http.StatusOK, webtemplates.ThrowPage(page, reading))
}

func (h *handler) handleThrowText(w http.ResponseWriter, r *http.Request) {
	_, tag := webi18n.Localize(w, r)
	reading, err := h.throw(r, tag)
	if err != nil {
		logFailure(r, err)
		_ = httpx.WriteText(w, weberrors.HTTPStatus(err), weberrors.PublicMessage(tag, err))
		return
	}
	_ = httpx.WriteText(w, http.StatusOK, reading.Text)
}

// throw reads prompt and asof from the query. A present but empty prompt is
// a valid question.
func (h *handler) throw(r *http.Request, tag language.Tag) (app.Reading, error) {
	query := r.URL.Query()
	req := app.Request{
		Prompt:    query.Get(routepath.QueryPrompt),
		PromptSet: query.Has(routepath.QueryPrompt),
		AsOf:      query.Get(routepath.QueryAsOf),
	}
	ctx, cancel := context.WithTimeout(oracle.WithLanguage(httpx.RequestContext(r), tag), timeouts.GRPCRequest)
	defer cancel()
	return h.thrower.Throw(ctx, req)
}

func (h *handler) notFound(w http.ResponseWriter, r *http.Request) {
	page, _ := h.pageContext(w, r)
	h.render(w, r, http.StatusNotFound, webtemplates.ErrorPage(page, http.StatusNotFound, ""))
}

func (h *handler) methodNotAllowed(w http.ResponseWriter, r *http.Request) {
	page, _ := h.pageContext(w, r)
	h.render(w, r, http.StatusMethodNotAllowed, webtemplates.ErrorPage(page, http.StatusMethodNotAllowed, ""))
}

func (h *handler) internalError(w http.ResponseWriter, r *http.Request) {
	page, _ := h.pageContext(w, r)
	h.render(w, r, http.StatusInternalServerError, webtemplates.ErrorPage(page, http.StatusInternalServerError, ""))
}

func (h *handler) renderError(w http.ResponseWriter, r *http.Request, page webtemplates.PageContext, tag language.Tag, err error) {
	logFailure(r, err)
	statusCode := weberrors.HTTPStatus(err)
	h.render(w, r, statusCode, webtemplates.ErrorPage(page, statusCode, weberrors.PublicMessage(tag, err)))
}

func (h *handler) render(w http.ResponseWriter, r *http.Request, statusCode int, component templ.Component) {
	if err := httpx.WriteComponent(w, r, statusCode, component); err != nil {
		log.Printf("render %s: %v", r.URL.Path, err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}

func (h *handler) pageContext(w http.ResponseWriter, r *http.Request) (webtemplates.PageContext, language.Tag) {
	printer, tag := webi18n.Localize(w, r)
	return webtemplates.PageContext{
		Lang:         tag.String(),
		Loc:          printer,
		CurrentPath:  r.URL.Path,
		CurrentQuery: r.URL.RawQuery,
		Languages:    webi18n.Options(tag, printer),
	}, tag
}

// logFailure records server-side failures. Bad input is the caller's
// problem and stays out of the log.
func logFailure(r *http.Request, err error) {
	if weberrors.HTTPStatus(err) < http.StatusInternalServerError {
		return
	}
	log.Printf("throw failed path=%s request_id=%s: %v", r.URL.Path, r.Header.Get(httpx.RequestIDHeader), err)
}
