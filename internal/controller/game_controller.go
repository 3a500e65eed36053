package controller

import (
	"errors"

	"github.com/benbeisheim/chess-backend/internal/model"
	"github.com/benbeisheim/chess-backend/internal/service"
	"github.com/benbeisheim/chess-backend/internal/ws"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
)

type GameController struct {
	gameService *service.GameService
	log         zerolog.Logger
}

func NewGameController(gameService *service.GameService, log zerolog.Logger) *GameController {
	return &GameController{gameService: gameService, log: log}
}

// Register mounts the game routes on router.
func (gc *GameController) Register(router fiber.Router) {
	router.Post("/create", gc.CreateGame)
	router.Get("/:gameId", gc.GetGameState)
	router.Delete("/:gameId", gc.DeleteGame)
	router.Post("/:gameId/move", gc.MakeMove)
	router.Post("/:gameId/undo", gc.Undo)
	router.Post("/:gameId/reset", gc.Reset)
	router.Get("/:gameId/moves", gc.LegalTargets)
	router.Post("/:gameId/ai/suggest", gc.SuggestMove)
	router.Post("/:gameId/ai/move", gc.PlayAiMove)
}

type aiMoveRequest struct {
	Difficulty string `json:"difficulty"`
}

func (gc *GameController) CreateGame(c *fiber.Ctx) error {
	gameID, err := gc.gameService.CreateGame()
	if err != nil {
		return gc.fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Game created",
		"game_id": gameID,
	})
}

func (gc *GameController) GetGameState(c *fiber.Ctx) error {
	gameState, err := gc.gameService.GetGameState(c.Params("gameId"))
	if err != nil {
		return gc.fail(c, err)
	}
	return c.JSON(gameState)
}

func (gc *GameController) DeleteGame(c *fiber.Ctx) error {
	if err := gc.gameService.DeleteGame(c.Params("gameId")); err != nil {
		return gc.fail(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// MakeMove answers 200 for both accepted and rejected moves; the state's
// success flag tells them apart.
func (gc *GameController) MakeMove(c *fiber.Ctx) error {
	var req ws.MovePayload
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid move request",
		})
	}

	gameState, err := gc.gameService.HandleMove(
		c.Params("gameId"),
		model.Sq(req.StartRank, req.StartFile),
		model.Sq(req.EndRank, req.EndFile),
		req.PromotionPiece,
	)
	if err != nil {
		return gc.fail(c, err)
	}
	return c.JSON(gameState)
}

func (gc *GameController) Undo(c *fiber.Ctx) error {
	gameState, err := gc.gameService.Undo(c.Params("gameId"))
	if err != nil {
		return gc.fail(c, err)
	}
	return c.JSON(gameState)
}

func (gc *GameController) Reset(c *fiber.Ctx) error {
	gameState, err := gc.gameService.Reset(c.Params("gameId"))
	if err != nil {
		return gc.fail(c, err)
	}
	return c.JSON(gameState)
}

func (gc *GameController) LegalTargets(c *fiber.Ctx) error {
	from := model.Sq(c.QueryInt("rank", -1), c.QueryInt("file", -1))
	if !from.InBounds() {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "rank and file must be between 0 and 7",
		})
	}

	targets, err := gc.gameService.LegalTargets(c.Params("gameId"), from)
	if err != nil {
		return gc.fail(c, err)
	}
	return c.JSON(fiber.Map{
		"from":    from,
		"targets": targets,
	})
}

func (gc *GameController) SuggestMove(c *fiber.Ctx) error {
	var req aiMoveRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid AI request",
			})
		}
	}
	strength, err := gc.gameService.ResolveStrength(req.Difficulty)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	move, err := gc.gameService.RequestAiMove(c.Params("gameId"), strength)
	if err != nil {
		return gc.fail(c, err)
	}
	return c.JSON(fiber.Map{
		"move":       move.Simple(),
		"notation":   move.Notation,
		"promotion":  move.Promotion,
		"difficulty": strength,
	})
}

func (gc *GameController) PlayAiMove(c *fiber.Ctx) error {
	var req aiMoveRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid AI request",
			})
		}
	}
	strength, err := gc.gameService.ResolveStrength(req.Difficulty)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	gameState, err := gc.gameService.PlayAiMove(c.Params("gameId"), strength)
	if err != nil {
		return gc.fail(c, err)
	}
	return c.JSON(gameState)
}

func (gc *GameController) fail(c *fiber.Ctx, err error) error {
	status := statusFor(err)
	if status >= fiber.StatusInternalServerError {
		gc.log.Error().Err(err).Str("path", c.Path()).Msg("request failed")
	}
	return c.Status(status).JSON(fiber.Map{
		"error": err.Error(),
	})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrGameNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, service.ErrNoLegalMove), errors.Is(err, service.ErrGameChanged):
		return fiber.StatusConflict
	}
	return fiber.StatusInternalServerError
}
