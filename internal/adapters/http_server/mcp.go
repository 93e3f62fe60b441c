package httpserver

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/rs/zerolog/log"

	"concierge/internal/adapters/mcp"
	"concierge/internal/dispatch"
)

// MCPHandler serves tool listings and tool calls as JSON-RPC 2.0 on one POST endpoint.
type MCPHandler struct {
	Pipeline *dispatch.Pipeline
	Name     string
	Version  string
}

func (s *Server) MountMCP(h *MCPHandler) {
	s.mux.Post("/mcp", h.serve)
}

func (h *MCPHandler) serve(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, 1<<20))
	if err != nil {
		writeRPC(w, mcp.Response{JSONRPC: mcp.Version, ID: json.RawMessage("null"),
			Error: &mcp.Error{Code: mcp.CodeParseError, Message: "Parse error"}})
		return
	}
	var req mcp.Request
	if err := json.Unmarshal(body, &req); err != nil {
		writeRPC(w, mcp.Response{JSONRPC: mcp.Version, ID: json.RawMessage("null"),
			Error: &mcp.Error{Code: mcp.CodeParseError, Message: "Parse error"}})
		return
	}
	if req.JSONRPC != mcp.Version || req.Method == "" {
		writeRPC(w, errorResponse(req, mcp.CodeInvalidRequest, "Invalid Request"))
		return
	}

	log.Debug().Str("method", req.Method).Msg("mcp_request")

	switch req.Method {
	case mcp.MethodInitialized:
		w.WriteHeader(http.StatusAccepted)
		return
	case mcp.MethodInitialize:
		writeRPC(w, result(req, map[string]any{
			"protocolVersion": mcp.ProtocolVersion,
			"capabilities":    map[string]any{"tools": map[string]any{}},
			"serverInfo":      map[string]any{"name": h.Name, "version": h.Version},
		}))
	case mcp.MethodToolsList:
		writeRPC(w, result(req, map[string]any{"tools": h.Pipeline.Tools()}))
	case mcp.MethodToolsCall:
		h.call(w, r, req)
	default:
		if req.IsNotification() {
			w.WriteHeader(http.StatusAccepted)
			return
		}
		writeRPC(w, errorResponse(req, mcp.CodeMethodNotFound, "Method not found: "+req.Method))
	}
}

func (h *MCPHandler) call(w http.ResponseWriter, r *http.Request, req mcp.Request) {
	var p mcp.CallParams
	if err := json.Unmarshal(req.Params, &p); err != nil || p.Name == "" {
		writeRPC(w, errorResponse(req, mcp.CodeInvalidParams, "Invalid params"))
		return
	}
	if p.Arguments == nil {
		p.Arguments = map[string]any{}
	}

	reply, err := h.Pipeline.Dispatch(r.Context(), p.Name, p.Arguments)
	switch {
	case errors.Is(err, dispatch.ErrUnknownTool):
		writeRPC(w, result(req, mcp.TextResult("Unknown tool: "+p.Name, true)))
	case errors.Is(err, dispatch.ErrIncompleteParams):
		writeRPC(w, result(req, mcp.TextResult("Please provide complete details for your request. ("+err.Error()+")", true)))
	case err != nil:
		writeRPC(w, errorResponse(req, mcp.CodeInternalError, err.Error()))
	default:
		writeRPC(w, result(req, mcp.TextResult(reply.Text, reply.Failed)))
	}
}

func result(req mcp.Request, v any) mcp.Response {
	return mcp.Response{JSONRPC: mcp.Version, ID: req.ID, Result: v}
}

func errorResponse(req mcp.Request, code int, msg string) mcp.Response {
	id := req.ID
	if len(id) == 0 {
		id = json.RawMessage("null")
	}
	return mcp.Response{JSONRPC: mcp.Version, ID: id, Error: &mcp.Error{Code: code, Message: msg}}
}

// JSON-RPC errors still travel with 200.
func writeRPC(w http.ResponseWriter, resp mcp.Response) {
	writeJSON(w, http.StatusOK, resp)
}
