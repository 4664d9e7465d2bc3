// Package pages отдаёт заглушки страниц, на которые перенаправляет контроль доступа.
// Интерфейса нет, каждая страница описывается небольшим JSON.
package pages

import (
	"net/http"

	"github.com/go-chi/render"

	"github.com/magabrotheeeer/todo-service/internal/http/middlewarectx"
)

// Page — описание страницы.
type Page struct {
	Page   string `json:"page"`
	Title  string `json:"title"`
	UserID string `json:"userId,omitempty"`
	Role   string `json:"role,omitempty"`
}

// Handler отдаёт одну страницу.
type Handler struct {
	page  string
	title string
}

// New создает новый экземпляр Handler.
func New(page, title string) *Handler {
	return &Handler{
		page:  page,
		title: title,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	p := Page{
		Page:  h.page,
		Title: h.title,
	}
	if id, ok := middlewarectx.UserID(r.Context()); ok {
		p.UserID = id
	}
	if role, ok := middlewarectx.RoleOf(r.Context()); ok {
		p.Role = string(role)
	}
	render.JSON(w, r, p)
}
