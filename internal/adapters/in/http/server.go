// Package http exposes the stepper over an echo HTTP API. The caller's
// identity arrives in the X-Actor-Key header and the role is resolved per
// request; there is no session state on the server.
package http

import (
	"errors"
	"net/http"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/stage"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

const actorHeader = "X-Actor-Key"

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	applyDecisionHandler commands.ApplyDecisionCommandHandler
	advanceStageHandler  commands.AdvanceStageCommandHandler

	// Query handlers
	currentStageHandler   queries.GetCurrentStageQueryHandler
	stageItemsHandler     queries.GetStageItemsQueryHandler
	exceptionItemsHandler queries.GetExceptionItemsQueryHandler
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	applyDecisionHandler commands.ApplyDecisionCommandHandler,
	advanceStageHandler commands.AdvanceStageCommandHandler,
	currentStageHandler queries.GetCurrentStageQueryHandler,
	stageItemsHandler queries.GetStageItemsQueryHandler,
	exceptionItemsHandler queries.GetExceptionItemsQueryHandler,
) *Server {
	return &Server{
		applyDecisionHandler:  applyDecisionHandler,
		advanceStageHandler:   advanceStageHandler,
		currentStageHandler:   currentStageHandler,
		stageItemsHandler:     stageItemsHandler,
		exceptionItemsHandler: exceptionItemsHandler,
	}
}

// Register mounts the stepper routes on the echo instance.
func (s *Server) Register(e *echo.Echo) {
	api := e.Group("/api/v1/stepper")
	api.GET("/current", s.GetCurrentStage)
	api.GET("/stages/:id/items", s.GetStageItems)
	api.GET("/exceptions/:id", s.GetExceptionItems)
	api.POST("/stages/:id/decision", s.PostDecision)
	api.POST("/stages/:id/advance", s.PostAdvance)
}

// GetCurrentStage handles GET /api/v1/stepper/current.
func (s *Server) GetCurrentStage(ctx echo.Context) error {
	actor, err := actorFromRequest(ctx)
	if err != nil {
		return errorResponse(ctx, err)
	}

	query, err := queries.NewGetCurrentStageQuery(actor)
	if err != nil {
		return errorResponse(ctx, err)
	}

	resp, err := s.currentStageHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return errorResponse(ctx, err)
	}

	allowed := make([]string, 0, len(resp.AllowedStages))
	for _, st := range resp.AllowedStages {
		allowed = append(allowed, st.ID())
	}

	return ctx.JSON(http.StatusOK, CurrentStageResponse{
		StageID:       resp.Stage.ID(),
		SequenceNo:    resp.Stage.SequenceNo(),
		Role:          resp.Role.String(),
		AllowedStages: allowed,
	})
}

// GetStageItems handles GET /api/v1/stepper/stages/:id/items.
func (s *Server) GetStageItems(ctx echo.Context) error {
	actor, err := actorFromRequest(ctx)
	if err != nil {
		return errorResponse(ctx, err)
	}

	st, err := stage.FromID(ctx.Param("id"))
	if err != nil {
		return errorResponse(ctx, err)
	}

	query, err := queries.NewGetStageItemsQuery(actor, st)
	if err != nil {
		return errorResponse(ctx, err)
	}

	resp, err := s.stageItemsHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.JSON(http.StatusOK, StageItemsResponse{
		StageID:            resp.Stage.ID(),
		Candidate:          resp.Candidate.Strings(),
		PreviouslyAccepted: resp.PreviouslyAccepted.Strings(),
		Locked:             resp.Locked,
		CanDecide:          resp.CanDecide,
	})
}

// GetExceptionItems handles GET /api/v1/stepper/exceptions/:id.
func (s *Server) GetExceptionItems(ctx echo.Context) error {
	actor, err := actorFromRequest(ctx)
	if err != nil {
		return errorResponse(ctx, err)
	}

	st, err := stage.FromID(ctx.Param("id"))
	if err != nil {
		return errorResponse(ctx, err)
	}

	query, err := queries.NewGetExceptionItemsQuery(actor, st)
	if err != nil {
		return errorResponse(ctx, err)
	}

	resp, err := s.exceptionItemsHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.JSON(http.StatusOK, ExceptionItemsResponse{
		StageID: resp.View.ID(),
		Keys:    resp.Keys.Strings(),
	})
}

// PostDecision handles POST /api/v1/stepper/stages/:id/decision.
func (s *Server) PostDecision(ctx echo.Context) error {
	actor, err := actorFromRequest(ctx)
	if err != nil {
		return errorResponse(ctx, err)
	}

	st, err := stage.FromID(ctx.Param("id"))
	if err != nil {
		return errorResponse(ctx, err)
	}

	var body DecisionRequest
	if err = ctx.Bind(&body); err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	cmd, err := commands.NewApplyDecisionCommand(
		actor, st, kernel.KeySetFromStrings(body.Chosen), body.ActivateStage)
	if err != nil {
		return errorResponse(ctx, err)
	}

	if err = s.applyDecisionHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// PostAdvance handles POST /api/v1/stepper/stages/:id/advance.
func (s *Server) PostAdvance(ctx echo.Context) error {
	actor, err := actorFromRequest(ctx)
	if err != nil {
		return errorResponse(ctx, err)
	}

	st, err := stage.FromID(ctx.Param("id"))
	if err != nil {
		return errorResponse(ctx, err)
	}

	cmd, err := commands.NewAdvanceStageCommand(actor, st)
	if err != nil {
		return errorResponse(ctx, err)
	}

	if err = s.advanceStageHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

func actorFromRequest(ctx echo.Context) (kernel.ActorKey, error) {
	actor := kernel.ActorKey(ctx.Request().Header.Get(actorHeader))
	if err := actor.Validate(); err != nil {
		return "", errs.NewValueIsRequiredError(actorHeader + " header")
	}
	return actor, nil
}

// errorResponse maps domain errors onto HTTP statuses: authorization and
// role failures to 403, sequencing rejections to 409, validation to 400,
// everything else to 500.
func errorResponse(ctx echo.Context, err error) error {
	code := http.StatusInternalServerError

	switch {
	case errors.Is(err, commands.ErrDecisionNotPermitted),
		errors.Is(err, commands.ErrStageNotPermitted),
		errors.Is(err, queries.ErrStageNotOpenable),
		errors.Is(err, services.ErrActorRoleConflict),
		errors.Is(err, services.ErrNoRoleForActor):
		code = http.StatusForbidden

	case errors.Is(err, services.ErrCannotReturnToPriorStage),
		errors.Is(err, services.ErrMustAdvanceInOrder):
		code = http.StatusConflict

	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange),
		errors.Is(err, commands.ErrStageIsNotDecidable),
		errors.Is(err, queries.ErrStageHasNoItemList),
		errors.Is(err, queries.ErrStageIsNotExceptionView):
		code = http.StatusBadRequest
	}

	return ctx.JSON(code, ErrorResponse{
		Code:    code,
		Message: err.Error(),
	})
}
