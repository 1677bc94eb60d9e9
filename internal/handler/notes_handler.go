package handler

import (
	"bytes"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

var (
	markdownEngine = goldmark.New(
		goldmark.WithExtensions(extension.GFM, extension.Linkify),
		goldmark.WithRendererOptions(html.WithHardWraps(), html.WithXHTML()),
	)
	sanitizer = bluemonday.UGCPolicy()
)

type renderedNote struct {
	Date string `json:"date"`
	HTML string `json:"html"`
}

// HabitNotesHTML 把习惯的打卡备注按 Markdown 渲染为净化后的 HTML。
func (a *API) HabitNotesHTML(c *gin.Context) {
	h, ok := a.habits.Get(c.Param("id"))
	if !ok {
		respondError(c, http.StatusNotFound, "习惯不存在")
		return
	}

	notes := make([]renderedNote, 0, len(h.CompletionNotes))
	for _, note := range h.CompletionNotes {
		var buf bytes.Buffer
		if err := markdownEngine.Convert([]byte(note.Note), &buf); err != nil {
			respondError(c, http.StatusInternalServerError, "渲染备注失败")
			return
		}
		notes = append(notes, renderedNote{
			Date: note.Date,
			HTML: sanitizer.Sanitize(buf.String()),
		})
	}

	c.JSON(http.StatusOK, gin.H{"notes": notes})
}
