package contracts

import "github.com/julienschmidt/httprouter"

// Handler is implemented by every HTTP surface mounted on an Application.
type Handler interface {
	RegisterRoutes(*httprouter.Router)
}
