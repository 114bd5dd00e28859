package nav

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/realahmed45/future-bali-frontend/internal/domain"
	apperrors "github.com/realahmed45/future-bali-frontend/pkg/errors"
)

func TestLoadGraph_CheckoutOrder(t *testing.T) {
	g, err := LoadGraph()
	require.NoError(t, err)

	want := []string{
		"/package1", "/package1-cart", "/review-order", "/review_order1_2",
		"/review_order1_3", "/Emergency-details", "/place-order", "/payment", "/",
	}
	path := want[0]
	for _, next := range want[1:] {
		got, err := g.Next(path)
		require.NoError(t, err, path)
		assert.Equal(t, next, got, path)
		path = got
	}

	assert.True(t, g.IsProtected("/payment"))
	assert.False(t, g.IsProtected("/login"))
	assert.False(t, g.IsProtected("/nowhere"))

	_, err = g.Route("/nowhere")
	var nf *apperrors.ErrNotFound
	assert.ErrorAs(t, err, &nf)
}

func TestParseGraph_RejectsBadDefinitions(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"unknown next", "routes:\n  - path: /a\n    next: /b\n"},
		{"duplicate", "routes:\n  - path: /a\n  - path: /a\n"},
		{"relative path", "routes:\n  - path: a\n"},
		{"not yaml", "routes: [\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseGraph([]byte(tt.yaml))
			assert.Error(t, err)
		})
	}
}

type tokenFlag bool

func (f tokenFlag) Token() (string, bool) {
	if f {
		return "tok", true
	}
	return "", false
}

func TestGuard_Check(t *testing.T) {
	g, err := LoadGraph()
	require.NoError(t, err)

	draft := domain.NewDraft(domain.Package1().Base)
	draft.CartID = "cart-1"
	loc := domain.Location{Path: "/package1-cart", State: &draft}

	t.Run("public route", func(t *testing.T) {
		d := NewGuard(g, tokenFlag(false)).Check(domain.Location{Path: "/login"})
		assert.True(t, d.Allowed)
	})

	t.Run("protected with token", func(t *testing.T) {
		d := NewGuard(g, tokenFlag(true)).Check(loc)
		assert.True(t, d.Allowed)
		assert.Nil(t, d.From)
	})

	t.Run("protected without token keeps destination", func(t *testing.T) {
		d := NewGuard(g, tokenFlag(false)).Check(loc)
		assert.False(t, d.Allowed)
		assert.Equal(t, LoginPath, d.Redirect)
		require.NotNil(t, d.From)
		assert.Equal(t, "/package1-cart", d.From.Path)
		require.NotNil(t, d.From.State)
		assert.Equal(t, "cart-1", d.From.State.CartID)

		// the remembered draft is a copy
		draft.CartID = "changed"
		assert.Equal(t, "cart-1", d.From.State.CartID)
	})
}
