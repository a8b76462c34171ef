package cli

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/community-aid/schema"
)

func TestPostedPrefersCreationTime(t *testing.T) {
	l := schema.Listing{PostedDate: "2 days ago"}
	assert.Equal(t, "2 days ago", posted(&l))

	l.CreatedAt = time.Now().Add(-3 * time.Hour)
	assert.Equal(t, "3 hours ago", posted(&l))
}

func TestRenderTableAlignsColumns(t *testing.T) {
	var out bytes.Buffer
	renderTable(&out, []string{"ID", "TITLE"}, [][]string{{"1", "Coats"}, {"22", "Books"}})

	assert.Equal(t, "ID  TITLE\n1   Coats\n22  Books\n", out.String())
}

func TestSummarize(t *testing.T) {
	donations := []schema.Donation{
		{Listing: schema.Listing{Category: "Food"}},
		{Listing: schema.Listing{Category: "Food"}},
	}
	requests := []schema.Request{
		{Listing: schema.Listing{Category: "Medical"}, Urgency: schema.UrgencyHigh},
		{Listing: schema.Listing{Category: "Food"}},
	}

	s := summarize(donations, requests)
	assert.Equal(t, 2, s.Donations)
	assert.Equal(t, 2, s.Requests)
	assert.Equal(t, 1, s.HighUrgency)
	assert.Equal(t, [2]int{2, 1}, s.PerCategory["Food"])
	assert.Equal(t, [2]int{0, 1}, s.PerCategory["Medical"])
	assert.Equal(t, [2]int{0, 0}, s.PerCategory["Clothing"])
}
