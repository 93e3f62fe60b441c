package httpserver_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	httpserver "concierge/internal/adapters/http_server"
	"concierge/internal/adapters/mcp"
	"concierge/internal/tools"
)

func TestMCP_RoundTripWithClient(t *testing.T) {
	ts := httptest.NewServer(newToolServer(httpserver.Options{}).Mux())
	defer ts.Close()

	cl := mcp.NewClient(ts.URL+"/mcp", time.Second, 100)
	ctx := context.Background()

	if err := cl.Initialize(ctx); err != nil {
		t.Fatalf("initialize: %v", err)
	}

	defs, err := cl.ListTools(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(defs) != len(tools.Kinds()) {
		t.Fatalf("got %d tools", len(defs))
	}
	if defs[0].Name != "search_hotels" || defs[0].InputSchema["type"] != "object" {
		t.Fatalf("unexpected first tool %+v", defs[0])
	}

	res, err := cl.CallTool(ctx, "get_current_weather", map[string]any{"location": "Miami"})
	if err != nil {
		t.Fatalf("call: %v", err)
	}
	if res.Failed || !strings.Contains(res.Text, "**Current Weather in Miami**") {
		t.Fatalf("unexpected result %+v", res)
	}

	res, err = cl.CallTool(ctx, "get_booking", map[string]any{"booking_id": "NOPE"})
	if err != nil {
		t.Fatalf("call: %v", err)
	}
	if !res.Failed || res.Text != "❌ Booking not found" {
		t.Fatalf("unexpected result %+v", res)
	}

	res, _ = cl.CallTool(ctx, "teleport", map[string]any{})
	if !res.Failed || res.Text != "Unknown tool: teleport" {
		t.Fatalf("unexpected result %+v", res)
	}

	res, _ = cl.CallTool(ctx, "get_current_weather", map[string]any{"location": nil})
	if !res.Failed || !strings.HasPrefix(res.Text, "Please provide complete details for your request.") {
		t.Fatalf("unexpected result %+v", res)
	}
}

func TestMCP_ProtocolErrors(t *testing.T) {
	h := newToolServer(httpserver.Options{}).Mux()
	cases := []struct {
		name string
		body string
		code int
	}{
		{"parse error", `{"jsonrpc":`, mcp.CodeParseError},
		{"wrong version", `{"jsonrpc":"1.0","id":1,"method":"tools/list"}`, mcp.CodeInvalidRequest},
		{"unknown method", `{"jsonrpc":"2.0","id":1,"method":"resources/list"}`, mcp.CodeMethodNotFound},
		{"call without name", `{"jsonrpc":"2.0","id":"a","method":"tools/call","params":{"arguments":{}}}`, mcp.CodeInvalidParams},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rr := do(t, h, "POST", "/mcp", tc.body)
			if rr.Code != http.StatusOK {
				t.Fatalf("status %d", rr.Code)
			}
			resp := decode[mcp.Response](t, rr.Body.Bytes())
			if resp.Error == nil || resp.Error.Code != tc.code {
				t.Fatalf("got %+v", resp)
			}
		})
	}
}

func TestMCP_EchoesStringID(t *testing.T) {
	h := newToolServer(httpserver.Options{}).Mux()
	rr := do(t, h, "POST", "/mcp", `{"jsonrpc":"2.0","id":"req-7","method":"tools/list"}`)
	resp := decode[mcp.Response](t, rr.Body.Bytes())
	if string(resp.ID) != `"req-7"` {
		t.Fatalf("id = %s", resp.ID)
	}
}

func TestMCP_NotificationAccepted(t *testing.T) {
	h := newToolServer(httpserver.Options{}).Mux()
	rr := do(t, h, "POST", "/mcp", `{"jsonrpc":"2.0","method":"notifications/initialized"}`)
	if rr.Code != http.StatusAccepted || rr.Body.Len() != 0 {
		t.Fatalf("got %d %q", rr.Code, rr.Body.String())
	}
}
