package dto

type RouteLoadResponse struct {
	RouteID        string `json:"route_id"`
	RouteNumber    string `json:"route_number"`
	RouteName      string `json:"route_name"`
	PassengerCount int    `json:"passenger_count"`
	Capacity       int    `json:"capacity"`
	RemainingSeats int    `json:"remaining_seats"`
	Category       string `json:"category"`
}

type ListRouteLoadsResponse struct {
	Date  string              `json:"date"`
	Loads []RouteLoadResponse `json:"loads"`
}
