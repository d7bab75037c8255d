package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocations(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "from with abbreviation",
			text: "customers from the UK",
			want: []string{"United Kingdom"},
		},
		{
			name: "located in",
			text: "everyone located in Germany",
			want: []string{"Germany"},
		},
		{
			name: "in with trailing clause",
			text: "customers in France who purchased recently",
			want: []string{"France"},
		},
		{
			name: "title casing of unknown places",
			text: "customers from new zealand",
			want: []string{"New Zealand"},
		},
		{
			name: "leading place before customers",
			text: "german customers with carts",
			want: []string{"German"},
		},
		{
			name: "or-separated list",
			text: "customers from UK or Germany",
			want: []string{"United Kingdom", "Germany"},
		},
		{
			name: "and-separated list",
			text: "customers from France and Spain",
			want: []string{"France", "Spain"},
		},
		{
			name: "comma-separated list",
			text: "customers located in France, Spain",
			want: []string{"France", "Spain"},
		},
		{
			name: "region name kept as-is",
			text: "customers from scandinavia",
			want: []string{"Scandinavia"},
		},
		{
			name: "stop words are stripped",
			text: "customers from the usa",
			want: []string{"United States"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hit := Locations(tt.text)
			require.NotNil(t, hit)
			assert.Equal(t, tt.want, hit.Locations)
			assert.NotEmpty(t, hit.Anchor)
		})
	}
}

func TestLocationsMiss(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"no location phrasing", "customers who abandoned their cart"},
		{"time phrase is not a place", "customers who purchased in last 30 days"},
		{"in past week is not a place", "emailed in past week"},
		{"empty", ""},
		{"only stop words captured", "customers from the"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Nil(t, Locations(tt.text))
		})
	}
}

func TestAmount(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		wantOp string
		want   string
	}{
		{"over", "carts over $100", "greater than", "$100"},
		{"more than no dollar sign", "spent more than 250", "greater than", "$250"},
		{"at least", "orders of at least $50", "greater than", "$50"},
		{"under", "cart value under $20", "less than", "$20"},
		{"less than", "spent less than 15", "less than", "$15"},
		{"between", "carts between $50 and $100", "between", "$50-$100"},
		{"between without signs", "spent between 10 and 20", "between", "$10-$20"},
		{"exactly", "cart is exactly $99", "equals", "$99"},
		{"bare dollar amount reads as floor", "abandoned carts $100", "greater than", "$100"},
		{"decimal", "carts over $19.99", "greater than", "$19.99"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hit := Amount(tt.text)
			require.NotNil(t, hit)
			assert.Equal(t, tt.wantOp, string(hit.Operator))
			assert.Equal(t, tt.want, hit.Value)
			assert.NotEmpty(t, hit.Anchor)
		})
	}
}

func TestAmountMiss(t *testing.T) {
	assert.Nil(t, Amount("customers who abandoned their cart"))
	assert.Nil(t, Amount("purchased in last 30 days"))
	assert.Nil(t, Amount(""))
}

func TestTimeRange(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
		ok   bool
	}{
		{"table phrase", "purchased in last 30 days", "Last 30 days", true},
		{"this month stays calendar", "no email this month", "This month", true},
		{"explicit days", "in the last 45 days", "Last 45 days", true},
		{"weeks multiply", "over the past 6 weeks", "Last 42 days", true},
		{"months multiply", "in the previous 4 months", "Last 120 days", true},
		{"whole years of months", "in the last 12 months", "Last 365 days", true},
		{"no duration", "VIP customers", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := TimeRange(tt.text)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTag(t *testing.T) {
	t.Run("synonym hit", func(t *testing.T) {
		hit := Tag("our VIP customers")
		require.NotNil(t, hit)
		assert.Equal(t, "Customer Tag", string(hit.Field))
		assert.Equal(t, "VIP", hit.Value)
		assert.Equal(t, "vip", hit.Anchor)
	})

	t.Run("synonym for another field", func(t *testing.T) {
		hit := Tag("newsletter subscribers")
		require.NotNil(t, hit)
		assert.Equal(t, "Newsletter Subscriber", string(hit.Field))
		assert.Equal(t, "True", hit.Value)
	})

	t.Run("explicit tag phrasing", func(t *testing.T) {
		tests := []struct {
			text string
			want string
		}{
			{"customers tagged as wholesale-2024", "wholesale-2024"},
			{"tag is 'gold'", "gold"},
			{`tagged with "beta"`, "beta"},
			{"tagged summer_sale", "summer_sale"},
		}
		for _, tt := range tests {
			hit := Tag(tt.text)
			require.NotNil(t, hit, tt.text)
			assert.Equal(t, "Customer Tag", string(hit.Field))
			assert.Equal(t, tt.want, hit.Value)
		}
	})

	t.Run("filler word is not a tag", func(t *testing.T) {
		assert.Nil(t, Tag("customers tagged as"))
	})

	t.Run("no tag intent", func(t *testing.T) {
		assert.Nil(t, Tag("customers from France"))
	})
}

func TestNegated(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		anchor string
		want   bool
	}{
		{"cue near anchor", "customers not located in UK", "UK", true},
		{"without near purchase", "customers without purchases", "purchases", true},
		{"no cue", "customers located in UK", "UK", false},
		{"cue far from anchor", "do not count staff accounts, customers who purchased recently", "purchased", false},
		{"empty anchor, any cue negates", "exclude everyone", "", true},
		{"empty anchor, no cue", "include everyone", "", false},
		{"anchor missing from text falls back to any cue", "never mind", "zzz", true},
		{"contraction cue", "customers who haven't purchased", "purchased", true},
		{"no longer cue", "customers no longer subscribed", "subscribed", true},
		{"nothing is not a cue", "customers with nothing in cart", "cart", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Negated(tt.text, tt.anchor))
		})
	}
}
