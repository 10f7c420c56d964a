package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/shouni/gemini-logo-studio/pkg/domain"
	"github.com/shouni/gemini-logo-studio/pkg/imgutil"
	"github.com/shouni/gemini-logo-studio/pkg/utils"
	"github.com/shouni/gemini-logo-studio/pkg/viewstate"
)

type submitRequest struct {
	Brief string `json:"brief" form:"brief"`
}

type motionRequest struct {
	Preset string `json:"preset" form:"preset"`
}

type apiError struct {
	Error string        `json:"error"`
	State stateResponse `json:"state"`
}

type stateResponse struct {
	Step        viewstate.Step `json:"step"`
	Brief       string         `json:"brief"`
	Error       string         `json:"error,omitempty"`
	Motion      string         `json:"motion"`
	MotionClass string         `json:"motionClass"`
	ImageURL    string         `json:"imageUrl,omitempty"`
	Prompt      string         `json:"prompt,omitempty"`
	RequestID   uint64         `json:"requestId"`
}

func toStateResponse(s viewstate.State) stateResponse {
	out := stateResponse{
		Step:        s.Step,
		Brief:       s.Brief,
		Error:       s.LastError,
		Motion:      string(s.Motion),
		MotionClass: s.Motion.CSSClass(),
		RequestID:   s.RequestID,
	}
	if s.Result != nil {
		out.ImageURL = s.Result.ImageURL
		out.Prompt = s.Result.Prompt
	}
	return out
}

// controller はクッキーからセッションを解決し、無ければ作成してクッキーを発行します。
func (s *Server) controller(c *gin.Context) (*viewstate.Controller, bool) {
	if id, err := c.Cookie(sessionCookie); err == nil {
		if ctrl, ok := s.sessions.Get(id); ok {
			return ctrl, true
		}
	}

	id, ctrl, err := s.sessions.Create()
	if err != nil {
		log.Error().Err(err).Msg("create session failed")
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "session unavailable"})
		return nil, false
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(sessionCookie, id, 0, "/", "", false, true)
	return ctrl, true
}

func (s *Server) handleState(c *gin.Context) {
	ctrl, ok := s.controller(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, toStateResponse(ctrl.Snapshot()))
}

func (s *Server) handleSubmit(c *gin.Context) {
	ctrl, ok := s.controller(c)
	if !ok {
		return
	}

	var req submitRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, apiError{Error: "invalid request body", State: toStateResponse(ctrl.Snapshot())})
		return
	}

	if utils.IsBlank(req.Brief) {
		c.JSON(http.StatusUnprocessableEntity, apiError{Error: "brief is empty", State: toStateResponse(ctrl.Snapshot())})
		return
	}
	if !ctrl.Submit(req.Brief) {
		c.JSON(http.StatusConflict, apiError{Error: "a logo can only be requested from the input step", State: toStateResponse(ctrl.Snapshot())})
		return
	}
	c.JSON(http.StatusAccepted, toStateResponse(ctrl.Snapshot()))
}

func (s *Server) handleReset(c *gin.Context) {
	ctrl, ok := s.controller(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, toStateResponse(ctrl.Reset()))
}

func (s *Server) handleMotion(c *gin.Context) {
	ctrl, ok := s.controller(c)
	if !ok {
		return
	}

	var req motionRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, apiError{Error: "invalid request body", State: toStateResponse(ctrl.Snapshot())})
		return
	}
	preset, err := domain.ParseMotionPreset(req.Preset)
	if err != nil {
		c.JSON(http.StatusBadRequest, apiError{Error: err.Error(), State: toStateResponse(ctrl.Snapshot())})
		return
	}
	c.JSON(http.StatusOK, toStateResponse(ctrl.SelectMotion(preset)))
}

func (s *Server) handleDownload(c *gin.Context) {
	ctrl, ok := s.controller(c)
	if !ok {
		return
	}

	state := ctrl.Snapshot()
	if state.Result == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no logo has been generated"})
		return
	}

	data, err := imgutil.ToPNG(state.Result.Data)
	if err != nil {
		// data URI も image/png として表示しているので、変換できなければそのまま返す
		log.Warn().Err(err).Str("mime_type", state.Result.MimeType).Msg("logo could not be re-encoded as png")
		data = state.Result.Data
	}

	c.Header("Content-Disposition", `attachment; filename="logo.png"`)
	c.Data(http.StatusOK, "image/png", data)
}

func (s *Server) handleIndex(c *gin.Context) {
	ctrl, ok := s.controller(c)
	if !ok {
		return
	}
	c.HTML(http.StatusOK, "index.html", newPageView(ctrl.Snapshot(), s.model))
}
