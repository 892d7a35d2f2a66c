// Package dashboard implements the REST API handlers for the dashboard panels and the autonomous engine.
package dashboard

import (
	"errors"
	"strconv"

	"github.com/aishield/shield-backend/internal/autonomous"
	"github.com/aishield/shield-backend/internal/narrative"
	"github.com/aishield/shield-backend/internal/services"
	"github.com/aishield/shield-backend/internal/simulation"
	"github.com/aishield/shield-backend/model"
	"github.com/gofiber/fiber/v2"
)

func fail(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{"error": message})
}

// statusFor maps domain errors onto HTTP status codes
func statusFor(err error) int {
	switch {
	case errors.Is(err, simulation.ErrInvalidScenario):
		return fiber.StatusUnprocessableEntity
	case errors.Is(err, autonomous.ErrInvalidTransition):
		return fiber.StatusConflict
	case errors.Is(err, narrative.ErrUnknownKind), errors.Is(err, narrative.ErrMissingImage):
		return fiber.StatusBadRequest
	}
	return fiber.StatusInternalServerError
}

func parseRange(c *fiber.Ctx, fallback model.TimeRange) (model.TimeRange, error) {
	raw := c.Query("range")
	if raw == "" {
		return fallback, nil
	}
	return model.ParseTimeRange(raw)
}

// GetDashboard returns the KPI cards and summary, switching the range when ?range= differs
func GetDashboard(d *services.Dashboard) fiber.Handler {
	return func(c *fiber.Ctx) error {
		current := d.Store().State().TimeRange
		r, err := parseRange(c, current)
		if err != nil {
			return fail(c, fiber.StatusBadRequest, err.Error())
		}
		if r == current {
			return c.JSON(d.Overview())
		}
		view, err := d.SetTimeRange(r)
		if err != nil {
			return fail(c, statusFor(err), err.Error())
		}
		return c.JSON(view)
	}
}

// PostTimeRange switches the dashboard window
func PostTimeRange(d *services.Dashboard) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req model.TimeRangeRequest
		if err := c.BodyParser(&req); err != nil {
			return fail(c, fiber.StatusBadRequest, "Invalid request body: "+err.Error())
		}
		r, err := model.ParseTimeRange(req.Range)
		if err != nil {
			return fail(c, fiber.StatusBadRequest, err.Error())
		}
		view, err := d.SetTimeRange(r)
		if err != nil {
			return fail(c, statusFor(err), err.Error())
		}
		return c.JSON(view)
	}
}

// GetPulse returns the pulse series and its digest
func GetPulse(d *services.Dashboard) fiber.Handler {
	return func(c *fiber.Ctx) error {
		r, err := parseRange(c, d.Store().State().TimeRange)
		if err != nil {
			return fail(c, fiber.StatusBadRequest, err.Error())
		}
		return c.JSON(d.Pulse(r))
	}
}

// PostPulseAction asks for a tactical action over the pulse trend
func PostPulseAction(d *services.Dashboard) fiber.Handler {
	return func(c *fiber.Ctx) error {
		r := d.Store().State().TimeRange
		if len(c.Body()) > 0 {
			var req model.TimeRangeRequest
			if err := c.BodyParser(&req); err != nil {
				return fail(c, fiber.StatusBadRequest, "Invalid request body: "+err.Error())
			}
			if req.Range != "" {
				parsed, err := model.ParseTimeRange(req.Range)
				if err != nil {
					return fail(c, fiber.StatusBadRequest, err.Error())
				}
				r = parsed
			}
		}
		return c.JSON(d.PulseAction(c.UserContext(), r))
	}
}

// GetFeed returns the current incident feed window
func GetFeed(d *services.Dashboard) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"incidents": d.Feed().Snapshot(),
			"rotations": d.Feed().Rotations(),
		})
	}
}

// GetCatalogTable returns one named reference table
func GetCatalogTable(d *services.Dashboard) fiber.Handler {
	return func(c *fiber.Ctx) error {
		table, ok := d.Catalog().Table(c.Params("name"))
		if !ok {
			return fail(c, fiber.StatusNotFound, "unknown catalog table "+c.Params("name"))
		}
		return c.JSON(table)
	}
}

// GetScenario returns the current simulator panel
func GetScenario(d *services.Dashboard) fiber.Handler {
	return func(c *fiber.Ctx) error {
		view, err := d.Scenario()
		if err != nil {
			return fail(c, statusFor(err), err.Error())
		}
		return c.JSON(view)
	}
}

// PostScenario recomputes the projection and schedules a fresh brief
func PostScenario(d *services.Dashboard) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var in model.ScenarioInput
		if err := c.BodyParser(&in); err != nil {
			return fail(c, fiber.StatusBadRequest, "Invalid request body: "+err.Error())
		}
		view, err := d.SetScenario(in)
		if err != nil {
			return fail(c, statusFor(err), err.Error())
		}
		return c.JSON(view)
	}
}

// GetComparison computes a period over period delta
func GetComparison(d *services.Dashboard) fiber.Handler {
	return func(c *fiber.Ctx) error {
		period := model.ComparisonPeriod(c.Query("period", string(model.PeriodMonth)))
		metric := model.ComparisonMetric(c.Query("metric", string(model.MetricBudget)))
		view, err := d.Compare(period, metric)
		if err != nil {
			return fail(c, fiber.StatusBadRequest, err.Error())
		}
		return c.JSON(view)
	}
}

// GetBudget returns the range scaled platform spend and traffic quality panels
func GetBudget(d *services.Dashboard) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(d.Budget())
	}
}

// GetReputation returns the radar and sentiment feed
func GetReputation(d *services.Dashboard) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(d.Reputation())
	}
}

// PostNarrative runs one call site directly. An empty body uses the live dashboard context.
func PostNarrative(d *services.Dashboard) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var in narrative.Input
		if len(c.Body()) > 0 {
			if err := c.BodyParser(&in); err != nil {
				return fail(c, fiber.StatusBadRequest, "Invalid request body: "+err.Error())
			}
		}
		art, err := d.Narrate(c.UserContext(), model.NarrativeKind(c.Params("kind")), in)
		if err != nil {
			return fail(c, statusFor(err), err.Error())
		}
		return c.JSON(art)
	}
}

// GetHistory returns the latest journal entries
func GetHistory(d *services.Dashboard) fiber.Handler {
	return func(c *fiber.Ctx) error {
		limit := 0
		if raw := c.Query("limit"); raw != "" {
			n, err := strconv.Atoi(raw)
			if err != nil {
				return fail(c, fiber.StatusBadRequest, "limit must be an integer")
			}
			limit = n
		}
		h, err := d.History(c.UserContext(), model.NarrativeKind(c.Query("kind")), limit)
		if err != nil {
			return fail(c, fiber.StatusInternalServerError, "Failed to read history: "+err.Error())
		}
		return c.JSON(h)
	}
}

// GetEngine returns the autonomous engine snapshot
func GetEngine(d *services.Dashboard) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(d.Engine().Snapshot())
	}
}

// PostActivate deploys the pending intervention
func PostActivate(d *services.Dashboard) fiber.Handler {
	return func(c *fiber.Ctx) error {
		snap, err := d.Activate()
		if err != nil {
			return fail(c, statusFor(err), err.Error())
		}
		return c.JSON(snap)
	}
}

// PostIgnore dismisses the pending intervention
func PostIgnore(d *services.Dashboard) fiber.Handler {
	return func(c *fiber.Ctx) error {
		snap, err := d.Ignore()
		if err != nil {
			return fail(c, statusFor(err), err.Error())
		}
		return c.JSON(snap)
	}
}
