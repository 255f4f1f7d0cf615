// Package site serves the server-rendered marketing pages and the
// no-JavaScript contact form.
package site

import (
	"bytes"
	"context"
	"errors"
	"html/template"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/schema"
	"go.uber.org/zap"

	applog "github.com/primeweb/site/internal/platform/logging"
	"github.com/primeweb/site/internal/platform/validate"
	leadsvc "github.com/primeweb/site/internal/service/lead"
	web "github.com/primeweb/site/internal/site"
)

const (
	contactPath = "/contacto"
	sentParam   = "enviado"
)

// ContactSubmitter relays the contact form.
type ContactSubmitter interface {
	SubmitContact(ctx context.Context, c leadsvc.Contact) (leadsvc.Receipt, error)
}

// contactForm is the urlencoded body of POST /contacto.
type contactForm struct {
	Name    string `schema:"name"`
	Email   string `schema:"email"`
	Phone   string `schema:"phone"`
	Message string `schema:"message"`
}

func (f contactForm) values() map[string]string {
	return map[string]string{"name": f.Name, "email": f.Email, "phone": f.Phone, "message": f.Message}
}

type homeBody struct {
	Services     []web.Feature
	Process      []web.Feature
	Portfolio    []web.Feature
	Testimonials []web.Testimonial
	FAQs         []web.FAQ
	BookingURL   string
	Contact      web.ContactForm
}

type pricingBody struct {
	Plans  []web.Plan
	Extras []web.Extra
}

type careersBody struct {
	Positions []web.Position
}

type blogBody struct {
	Posts      []web.Post
	Categories []string
	Category   string
	Query      string
}

type postBody struct {
	Post web.Post
	HTML template.HTML
}

// Handler renders pages.
type Handler struct {
	pages   *web.Renderer
	contact ContactSubmitter
	decoder *schema.Decoder
}

// New builds a Handler.
func New(pages *web.Renderer, contact ContactSubmitter) *Handler {
	dec := schema.NewDecoder()
	dec.IgnoreUnknownKeys(true)
	return &Handler{pages: pages, contact: contact, decoder: dec}
}

// Mount registers every page of the route table plus blog posts and the
// contact form fallback.
func (h *Handler) Mount(r chi.Router) {
	for _, route := range web.Routes() {
		r.Get(route.Path, h.page(route))
	}
	r.Get("/blog/{slug}", h.post)
	r.Post(contactPath, h.submitContact)
}

// NotFound renders the HTML 404 page.
func (h *Handler) NotFound(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusNotFound, web.PageNotFound, "Página no encontrada", nil)
}

func (h *Handler) page(route web.Route) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, ok := h.body(r, route)
		if !ok {
			h.NotFound(w, r)
			return
		}
		h.render(w, r, http.StatusOK, route.Page, route.Title, body)
	}
}

func (h *Handler) body(r *http.Request, route web.Route) (any, bool) {
	switch route.Page {
	case web.PageHome:
		form := web.ContactForm{Sent: r.URL.Query().Get(sentParam) == "1"}
		return h.home(form), true
	case web.PagePricing:
		return pricingBody{Plans: web.Plans(), Extras: web.Extras()}, true
	case web.PageCareers:
		return careersBody{Positions: web.Positions()}, true
	case web.PageBlog:
		q := r.URL.Query()
		category := q.Get("categoria")
		if category == web.AllCategories {
			category = ""
		}
		return blogBody{
			Posts:      web.SearchPosts(category, q.Get("q")),
			Categories: web.PostCategories(),
			Category:   category,
			Query:      q.Get("q"),
		}, true
	case web.PageLegal:
		return h.pages.Legal(route.Key)
	case web.PageService:
		return web.ServicePageBySlug(route.Key)
	}
	return nil, false
}

func (h *Handler) home(form web.ContactForm) homeBody {
	return homeBody{
		Services:     web.Services(),
		Process:      web.Process(),
		Portfolio:    web.Portfolio(),
		Testimonials: web.Testimonials(),
		FAQs:         web.FAQs(),
		BookingURL:   h.pages.Info().BookingURL,
		Contact:      form,
	}
}

func (h *Handler) post(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	p, ok := web.PostBySlug(slug)
	if !ok {
		h.NotFound(w, r)
		return
	}
	html, ok := h.pages.PostBody(slug)
	if !ok {
		h.NotFound(w, r)
		return
	}
	h.render(w, r, http.StatusOK, web.PagePost, p.Title, postBody{Post: p, HTML: html})
}

// submitContact follows post/redirect/get on success and re-renders the
// home page with the visitor's values on failure.
func (h *Handler) submitContact(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	var f contactForm
	if err := h.decoder.Decode(&f, r.PostForm); err != nil {
		applog.LogWarn(r.Context(), "contact form decode failed", zap.Error(err))
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	_, err := h.contact.SubmitContact(r.Context(), leadsvc.Contact{
		Name:    f.Name,
		Email:   f.Email,
		Phone:   f.Phone,
		Message: f.Message,
	})
	if err == nil {
		http.Redirect(w, r, "/?"+sentParam+"=1#contacto", http.StatusSeeOther)
		return
	}

	form := web.ContactForm{Values: f.values()}
	status := http.StatusBadGateway
	var verr *validate.Errors
	if errors.As(err, &verr) {
		status = http.StatusUnprocessableEntity
		form.Errors = make(map[string]string, len(verr.Issues))
		for _, is := range verr.Issues {
			form.Errors[is.Field] = is.Message
		}
	} else {
		form.Failed = true
	}
	h.render(w, r, status, web.PageHome, "Contacto", h.home(form))
}

func (h *Handler) render(w http.ResponseWriter, r *http.Request, status int, page, title string, body any) {
	var buf bytes.Buffer
	if err := h.pages.Render(&buf, page, title, r.URL.Path, body); err != nil {
		applog.LogError(r.Context(), "page render failed", err, zap.String("page", page))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}
