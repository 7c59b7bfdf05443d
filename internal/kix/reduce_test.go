package kix

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReduce_ProjectsFields(t *testing.T) {
	ticket := &Ticket{
		TicketID:     10000,
		TicketNumber: "2024081767000011",
		Title:        "Printer offline",
		Created:      "2024-08-17 10:00:00",
		Changed:      "2024-08-17 11:30:00",
		Articles: []Article{
			{
				ArticleID:       1,
				CreateTime:      "2024-08-17 10:00:00",
				From:            "customer@example.com",
				To:              "support@example.com",
				Subject:         "Printer offline",
				Body:            "The office printer stopped responding.",
				CustomerVisible: 1,
				SenderType:      "external",
			},
			{
				ArticleID:       2,
				CreateTime:      "2024-08-17 11:30:00",
				From:            "support@example.com",
				To:              "customer@example.com",
				Subject:         "RE: Printer offline",
				Body:            "Please power-cycle the device.",
				CustomerVisible: 0,
				SenderType:      "agent",
			},
		},
	}

	reduced := Reduce(ticket)

	assert.Equal(t, int64(10000), reduced.TicketID)
	assert.Equal(t, "2024081767000011", reduced.TicketNumber)
	assert.Equal(t, "Printer offline", reduced.Title)
	assert.Equal(t, "2024-08-17 10:00:00", reduced.Created)
	assert.Equal(t, "2024-08-17 11:30:00", reduced.Changed)

	require.Len(t, reduced.Articles, 2)
	first := reduced.Articles[0]
	assert.Equal(t, int64(1), first.ArticleID)
	assert.Equal(t, "customer@example.com", first.From)
	assert.Equal(t, "support@example.com", first.To)
	assert.Equal(t, "Printer offline", first.Subject)
	assert.Equal(t, "The office printer stopped responding.", first.Body)
	assert.Equal(t, 1, first.CustomerVisible)
	assert.Equal(t, "external", first.SenderType)
}

func TestReduce_PreservesOrderAndCount(t *testing.T) {
	ticket := &Ticket{TicketID: 1}
	for i := 0; i < 25; i++ {
		ticket.Articles = append(ticket.Articles, Article{
			ArticleID: int64(i + 1),
			Subject:   fmt.Sprintf("article %d", i+1),
		})
	}

	reduced := Reduce(ticket)

	require.Len(t, reduced.Articles, 25)
	for i, a := range reduced.Articles {
		assert.Equal(t, int64(i+1), a.ArticleID)
	}
}

func TestReduce_ArticleHasExactlyEightFields(t *testing.T) {
	reduced := Reduce(&Ticket{Articles: []Article{{ArticleID: 1}}})

	data, err := json.Marshal(reduced.Articles[0])
	require.NoError(t, err)

	var fields map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &fields))
	assert.Len(t, fields, 8)
	for _, key := range []string{"ArticleID", "CreateTime", "From", "To", "Subject", "Body", "CustomerVisible", "SenderType"} {
		assert.Contains(t, fields, key)
	}
}

func TestReduce_EmptyArticles(t *testing.T) {
	reduced := Reduce(&Ticket{TicketID: 7})

	assert.Equal(t, int64(7), reduced.TicketID)
	assert.Empty(t, reduced.Articles)
}
