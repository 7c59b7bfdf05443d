package kix

// Reduce projects a full ticket down to the fields relevant for
// summarization. Pure transformation: article order is preserved and no
// filtering or deduplication happens.
func Reduce(t *Ticket) *ReducedTicket {
	reduced := &ReducedTicket{
		TicketID:     t.TicketID,
		TicketNumber: t.TicketNumber,
		Title:        t.Title,
		Created:      t.Created,
		Changed:      t.Changed,
		Articles:     make([]ReducedArticle, 0, len(t.Articles)),
	}

	for _, a := range t.Articles {
		reduced.Articles = append(reduced.Articles, ReducedArticle{
			ArticleID:       a.ArticleID,
			CreateTime:      a.CreateTime,
			From:            a.From,
			To:              a.To,
			Subject:         a.Subject,
			Body:            a.Body,
			CustomerVisible: a.CustomerVisible,
			SenderType:      a.SenderType,
		})
	}

	return reduced
}
