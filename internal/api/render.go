package api

import (
	"bytes"
	"fmt"
	"html/template"
	"log"
	"path/filepath"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
)

func parsePageTemplates(templateDir string, funcMap template.FuncMap, pages []string) (map[string]*template.Template, error) {
	templates := make(map[string]*template.Template, len(pages))
	for _, page := range pages {
		parsed, err := template.New("base").Funcs(funcMap).ParseFiles(
			filepath.Join(templateDir, "base.html"),
			filepath.Join(templateDir, page+".html"),
		)
		if err != nil {
			return nil, fmt.Errorf("parse page template %s: %w", page, err)
		}
		templates[page] = parsed
	}
	return templates, nil
}

// render writes the named page with status. A missing or failing template
// never escapes as an error: the visitor gets a minimal page with the same
// status instead.
func (handler *Handler) render(c *fiber.Ctx, status int, name string, data fiber.Map) error {
	markup, err := handler.renderPage(name, handler.withTemplateDefaults(c, data))
	if err != nil {
		log.Printf("render %s: %v", name, err)
		markup = fallbackMarkup(status)
	}

	c.Status(status)
	c.Type("html", "utf-8")
	return c.SendString(markup)
}

func (handler *Handler) renderPage(name string, data fiber.Map) (string, error) {
	tmpl, ok := handler.templates[name]
	if !ok {
		return "", fmt.Errorf("template %q not found", name)
	}
	var output bytes.Buffer
	if err := tmpl.ExecuteTemplate(&output, "base", data); err != nil {
		return "", err
	}
	return output.String(), nil
}

func fallbackMarkup(status int) string {
	message := utils.StatusMessage(status)
	if message == "" {
		message = "Unexpected response"
	}
	return fmt.Sprintf(
		"<!doctype html><html><head><meta charset=\"utf-8\"><title>Wellnest</title></head><body><h1>%d</h1><p>%s</p></body></html>",
		status,
		template.HTMLEscapeString(message),
	)
}

func (handler *Handler) withTemplateDefaults(c *fiber.Ctx, data fiber.Map) fiber.Map {
	payload := fiber.Map{
		"Title":     "Wellnest",
		"CSRFToken": csrfToken(c),
		"CSRFField": CSRFFormField,
	}
	if identity, ok := currentIdentity(c); ok {
		payload["CurrentUser"] = &identity
	}
	for key, value := range data {
		payload[key] = value
	}
	return payload
}

func csrfToken(c *fiber.Ctx) string {
	token, _ := c.Locals(CSRFContextKey).(string)
	return token
}
