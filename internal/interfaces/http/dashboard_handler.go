package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/urufarma/lims-web/internal/application/dto"
)

// DashboardHandler panel principal con KPIs.
type DashboardHandler struct{}

func NewDashboardHandler() *DashboardHandler { return &DashboardHandler{} }

// Show GET /. Si el backend falla se muestran ceros y el toast de error.
func (h *DashboardHandler) Show(c *fiber.Ctx) error {
	ctx, cancel := requestContext(c)
	defer cancel()

	data := fiber.Map{"Title": "Panel de Control", "Stats": &dto.DashboardStats{}}
	stats, err := GetServices(c).Dashboard.Stats(ctx)
	if err != nil {
		if loadError(c, data, err, "No se pudieron cargar las estadísticas") {
			return c.Redirect("/login")
		}
	} else {
		data["Stats"] = stats
	}
	return render(c, fiber.StatusOK, "dashboard", data)
}
