package server

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

const htmxSrc = "https://unpkg.com/htmx.org@2.0.4"

// page is the document shell around the add form and the todo region.
func page(addForm, region templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>Todos</title>
<link rel="stylesheet" href="/static/app.css">
<script src="`+htmxSrc+`" defer></script>
<script src="/static/app.js" defer></script>
</head>
<body>
<main class="todo-page">
<h1>Todos</h1>
`); err != nil {
			return err
		}
		if err := addForm.Render(ctx, w); err != nil {
			return err
		}
		if err := region.Render(ctx, w); err != nil {
			return err
		}
		_, err := io.WriteString(w, `
<p class="hint"><kbd>Ctrl</kbd>/<kbd>⌘</kbd> + <kbd>K</kbd> to add a todo</p>
</main>
</body>
</html>
`)
		return err
	})
}
