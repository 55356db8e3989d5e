package api

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"quizbank/internal/question"
	"quizbank/internal/store"
)

// maxBodyBytes bounds a submission body.
const maxBodyBytes = 1 << 20

func (h *handler) handleListQuestions(c *gin.Context) {
	bank, err := h.store.Load(c.Request.Context())
	if err != nil {
		if store.IsCorrupt(err) && h.degradeOnCorrupt {
			h.logger.Printf("request %s: serving empty list: %v", requestIDFrom(c), err)
			bank = question.EmptyBank(h.nowFn())
		} else {
			h.logger.Printf("request %s: load questions: %v", requestIDFrom(c), err)
			writeError(c, http.StatusInternalServerError, msgFetchFailed)
			return
		}
	}
	filter := question.Filter{
		Skill: c.Query("skill"),
		Level: c.Query("level"),
		Grade: c.Query("grade"),
	}
	data := filter.Apply(bank.Questions)
	c.JSON(http.StatusOK, listResponse{
		Success:     true,
		Data:        data,
		Total:       len(data),
		LastUpdated: bank.LastUpdated,
	})
}

func (h *handler) handleSubmitQuestion(c *gin.Context) {
	body, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, maxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(c, http.StatusRequestEntityTooLarge, msgBodyTooLarge)
			return
		}
		writeError(c, http.StatusBadRequest, msgInvalidJSON)
		return
	}
	draft, err := question.DecodeDraft(body)
	if err != nil {
		writeError(c, http.StatusBadRequest, msgInvalidJSON)
		return
	}
	if err := draft.Validate(); err != nil {
		writeError(c, http.StatusBadRequest, err.Error())
		return
	}

	ctx := c.Request.Context()
	saved, total, err := h.store.Append(ctx, draft.Build(0, h.nowFn()))
	if err != nil {
		h.logger.Printf("request %s: save question: %v", requestIDFrom(c), err)
		writeError(c, http.StatusInternalServerError, msgSaveFailed)
		return
	}
	if h.skills != nil {
		if _, path, err := h.skills.Append(ctx, saved.Skill, saved); err != nil {
			h.logger.Printf("request %s: skill document for %q not updated: %v", requestIDFrom(c), saved.Skill, err)
		} else {
			h.logger.Printf("request %s: question %d saved to %s", requestIDFrom(c), saved.ID, path)
		}
	}
	c.JSON(http.StatusOK, submitResponse{
		Success:        true,
		Message:        msgSaved,
		Question:       saved,
		TotalQuestions: total,
	})
}
