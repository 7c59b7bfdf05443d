package kix

// Ticket mirrors the fields of a KIX ticket that this service consumes.
// Article order is preserved exactly as the API returned it.
type Ticket struct {
	TicketID     int64     `json:"TicketID"`
	TicketNumber string    `json:"TicketNumber"`
	Title        string    `json:"Title"`
	Created      string    `json:"Created"`
	Changed      string    `json:"Changed"`
	Articles     []Article `json:"Articles"`
}

// Article is a single communication entry on a ticket.
type Article struct {
	ArticleID       int64  `json:"ArticleID"`
	CreateTime      string `json:"CreateTime"`
	From            string `json:"From"`
	To              string `json:"To"`
	Subject         string `json:"Subject"`
	Body            string `json:"Body"`
	CustomerVisible int    `json:"CustomerVisible"`
	SenderType      string `json:"SenderType"`
}

// ReducedTicket is the projection sent to the completion endpoint when
// reduce_metadata resolves to true.
type ReducedTicket struct {
	TicketID     int64            `json:"TicketID"`
	TicketNumber string           `json:"TicketNumber"`
	Title        string           `json:"Title"`
	Created      string           `json:"Created"`
	Changed      string           `json:"Changed"`
	Articles     []ReducedArticle `json:"Articles"`
}

// ReducedArticle keeps exactly the eight article fields relevant for
// summarization.
type ReducedArticle struct {
	ArticleID       int64  `json:"ArticleID"`
	CreateTime      string `json:"CreateTime"`
	From            string `json:"From"`
	To              string `json:"To"`
	Subject         string `json:"Subject"`
	Body            string `json:"Body"`
	CustomerVisible int    `json:"CustomerVisible"`
	SenderType      string `json:"SenderType"`
}

type authRequest struct {
	UserLogin string `json:"UserLogin"`
	Password  string `json:"Password"`
	UserType  string `json:"UserType"`
}

type authResponse struct {
	Token string `json:"Token"`
}

type ticketResponse struct {
	Ticket *Ticket `json:"Ticket"`
}

// DynamicField is a named custom attribute writable through the ticket API.
type DynamicField struct {
	Name  string `json:"Name"`
	Value string `json:"Value"`
}

type updateTicketRequest struct {
	Ticket updateTicketBody `json:"Ticket"`
}

type updateTicketBody struct {
	DynamicFields []DynamicField `json:"DynamicFields"`
}
