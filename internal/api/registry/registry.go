package registry

import (
	"github.com/labstack/echo/v4"

	"atlas/internal/api/controllers"
	"atlas/internal/api/middleware"
	"atlas/internal/models"
	"atlas/internal/services"

	"gorm.io/gorm"
)

// crudEntry binds one content model to its menu and route path. The menu ID
// drives the permission check: the HTTP verb is mapped to view/create/update/
// delete and looked up in the actor's matrix.
type crudEntry struct {
	path   string
	menuID string
	mount  func(g *echo.Group, db *gorm.DB)
}

func mountCRUD[T any]() func(g *echo.Group, db *gorm.DB) {
	return func(g *echo.Group, db *gorm.DB) {
		var model T
		controller := controllers.NewBaseController(services.NewBaseService(db, model))
		controller.RegisterRoutes(g, "")
	}
}

// RegisterCRUDRoutes mounts CRUD routes for every content menu, each gated
// by the actor's permission matrix for that menu.
func RegisterCRUDRoutes(g *echo.Group, db *gorm.DB) {
	entries := []crudEntry{
		{path: "/countries", menuID: models.MenuCountries, mount: mountCRUD[models.Country]()},
		{path: "/regions", menuID: models.MenuRegions, mount: mountCRUD[models.Region]()},
		{path: "/cities", menuID: models.MenuCities, mount: mountCRUD[models.City]()},
		{path: "/museums", menuID: models.MenuMuseums, mount: mountCRUD[models.Museum]()},
		{path: "/restaurants", menuID: models.MenuRestaurants, mount: mountCRUD[models.Restaurant]()},
		{path: "/golf", menuID: models.MenuGolf, mount: mountCRUD[models.GolfVenue]()},
		{path: "/shopping", menuID: models.MenuShopping, mount: mountCRUD[models.ShoppingSpot]()},
		{path: "/itineraries", menuID: models.MenuItineraries, mount: mountCRUD[models.ItineraryBlock]()},
		// Account management: user records and their permission profiles
		{path: "/accounts/users", menuID: models.MenuAccounts, mount: mountCRUD[models.User]()},
		{path: "/accounts/profiles", menuID: models.MenuAccounts, mount: mountCRUD[models.PermissionProfile]()},
	}

	for _, entry := range entries {
		group := g.Group(entry.path)
		group.Use(middleware.RequireMenu(entry.menuID))
		entry.mount(group, db)
	}
}
