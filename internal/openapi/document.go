package openapi

import (
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"

	"github.com/mando-cx/mando-api/internal/apierr"
	"github.com/mando-cx/mando-api/internal/upload"
)

// Version is the OpenAPI version of generated documents.
const Version = "3.1.0"

// BearerScheme is the name of the bearer security scheme.
const BearerScheme = "Bearer"

// Options describes the API being documented.
type Options struct {
	Title    string
	Version  string
	BasePath string
}

// Build returns the document for a server reachable at serverURL.
func Build(opts Options, serverURL string) *Spec {
	base := opts.BasePath
	if base == "/" {
		base = ""
	}

	spec := &Spec{
		OpenAPI: Version,
		Info: Info{
			Title:   opts.Title,
			Version: opts.Version,
		},
		Servers: []Server{{URL: serverURL, Description: "Current environment"}},
		Paths:   make(map[string]PathItem),
		Components: Components{
			Schemas: map[string]*Schema{
				"ErrorResponse": ErrorResponseSchema(),
				"UploadedFile":  uploadedFileSchema(),
			},
			SecuritySchemes: map[string]SecurityScheme{
				BearerScheme: {Type: "http", Scheme: "bearer"},
			},
		},
		Tags: []Tag{
			{Name: "System"},
			{Name: "Notifications"},
			{Name: "Uploads"},
		},
	}

	spec.Paths[base+"/"] = PathItem{Get: &Operation{
		Tags:        []string{"System"},
		Summary:     "Greeting",
		OperationID: "getIndex",
		Responses: withErrors(map[string]Response{
			"200": jsonResponse("Greeting", &Schema{
				Type:       "object",
				Properties: map[string]*Schema{"message": {Type: "string", Example: "Hello Mando!"}},
				Required:   []string{"message"},
			}),
		}, apierr.CodeInternalServerError),
	}}

	spec.Paths[base+"/ping"] = PathItem{Get: &Operation{
		Tags:        []string{"System"},
		Summary:     "Liveness probe",
		OperationID: "ping",
		Responses: withErrors(map[string]Response{
			"200": {
				Description: "pong",
				Content:     map[string]MediaType{"text/plain": {Schema: &Schema{Type: "string", Example: "pong"}}},
			},
		}, apierr.CodeInternalServerError),
	}}

	spec.Paths[base+"/notifications/trigger"] = PathItem{Post: &Operation{
		Tags:        []string{"Notifications"},
		Summary:     "Trigger a notification workflow",
		OperationID: "triggerNotification",
		RequestBody: &RequestBody{
			Required: true,
			Content:  map[string]MediaType{"application/json": {Schema: triggerRequestSchema()}},
		},
		Responses: withErrors(map[string]Response{
			"200": jsonResponse("Provider response", &Schema{
				Type:       "object",
				Properties: map[string]*Schema{"novuResponse": {Type: "object", AdditionalProperties: true}},
			}),
		}, apierr.CodeBadRequest, apierr.CodeRateLimited, apierr.CodeInternalServerError),
		Security: []SecurityRequirement{{BearerScheme: {}}},
	}}

	for _, kind := range []upload.Kind{upload.KindAsset, upload.KindProcessed} {
		rules, _ := upload.RulesFor(kind)
		spec.Paths[base+"/uploads/"+uploadSegment(kind)] = PathItem{Post: &Operation{
			Tags:        []string{"Uploads"},
			Summary:     "Validate " + string(kind) + " files",
			Description: "Checks size and type of 1 to 10 files. Files are not stored.",
			OperationID: uploadOperationIDs[kind],
			RequestBody: &RequestBody{
				Required: true,
				Content: map[string]MediaType{"multipart/form-data": {Schema: &Schema{
					Type: "object",
					Properties: map[string]*Schema{
						"files": {
							Type:        "array",
							Description: "Allowed types: " + strings.Join(rules.MimeTypes(), ", "),
							Items:       &Schema{Type: "string", Format: "binary"},
						},
					},
					Required: []string{"files"},
				}}},
			},
			Responses: withErrors(map[string]Response{
				"200": jsonResponse("Accepted files", &Schema{
					Type: "object",
					Properties: map[string]*Schema{
						"files": {Type: "array", Items: &Schema{Ref: "#/components/schemas/UploadedFile"}},
					},
				}),
			}, apierr.CodeBadRequest, apierr.CodeInternalServerError),
		}}
	}

	spec.Paths[base+"/uploads/mime-types"] = PathItem{Get: &Operation{
		Tags:        []string{"Uploads"},
		Summary:     "List accepted content types",
		OperationID: "listMimeTypes",
		Parameters:  listParameters(),
		Responses: withErrors(map[string]Response{
			"200": jsonResponse("Accepted content types", &Schema{
				Type: "object",
				Properties: map[string]*Schema{
					"items":   {Type: "array", Items: &Schema{Type: "string"}},
					"total":   {Type: "integer"},
					"page":    {Type: "integer"},
					"perPage": {Type: "integer"},
				},
			}),
		}, apierr.CodeBadRequest, apierr.CodeInternalServerError),
	}}

	return spec
}

// ErrorResponseSchema is the shared error body with every code.
func ErrorResponseSchema() *Schema {
	return ErrorSchemaFor(apierr.Codes()...)
}

// ErrorSchemaFor returns the error body schema restricted to codes.
func ErrorSchemaFor(codes ...apierr.Code) *Schema {
	enum := make([]string, len(codes))
	example := ""
	for i, c := range codes {
		enum[i] = string(c)
		if c == apierr.CodeInternalServerError {
			example = string(c)
		}
	}
	if example == "" && len(enum) > 0 {
		example = enum[0]
	}

	return &Schema{
		Type: "object",
		Properties: map[string]*Schema{
			"code": {
				Type:        "string",
				Enum:        enum,
				Description: "A machine readable error code.",
				Example:     example,
			},
			"message": {
				Type:        "string",
				Description: "A human readable explanation of what went wrong.",
			},
			"requestId": {
				Type:        "string",
				Description: "Please always include the requestId in your error report.",
				Example:     "req_1234",
			},
		},
		Required: []string{"code", "message", "requestId"},
	}
}

// withErrors adds one response per status reachable from codes, each
// restricted to the codes mapping to that status.
func withErrors(responses map[string]Response, codes ...apierr.Code) map[string]Response {
	byStatus := make(map[int][]apierr.Code)
	for _, c := range codes {
		status := apierr.CodeToStatus(c)
		byStatus[status] = append(byStatus[status], c)
	}

	statuses := make([]int, 0, len(byStatus))
	for s := range byStatus {
		statuses = append(statuses, s)
	}
	sort.Ints(statuses)

	for _, s := range statuses {
		responses[strconv.Itoa(s)] = jsonResponse(http.StatusText(s), ErrorSchemaFor(byStatus[s]...))
	}
	return responses
}

func jsonResponse(description string, schema *Schema) Response {
	return Response{
		Description: description,
		Content:     map[string]MediaType{"application/json": {Schema: schema}},
	}
}

func triggerRequestSchema() *Schema {
	return &Schema{
		Type: "object",
		Properties: map[string]*Schema{
			"workflowId": {Type: "string", Example: "test-workflow-1234"},
			"to": {
				Type: "object",
				Properties: map[string]*Schema{
					"subscriberId": {Type: "string"},
					"email":        {Type: "string", Format: "email"},
					"firstName":    {Type: "string"},
					"lastName":     {Type: "string"},
				},
				Required: []string{"subscriberId"},
			},
			"payload": {Type: "object", AdditionalProperties: true},
		},
		Required: []string{"workflowId", "to"},
	}
}

func uploadedFileSchema() *Schema {
	return &Schema{
		Type: "object",
		Properties: map[string]*Schema{
			"name":        {Type: "string"},
			"size":        {Type: "integer"},
			"contentType": {Type: "string"},
		},
		Required: []string{"name", "size", "contentType"},
	}
}

func listParameters() []Parameter {
	one := 1.0
	return []Parameter{
		{Name: "kind", In: "query", Required: true, Schema: &Schema{Type: "string", Enum: []string{string(upload.KindAsset), string(upload.KindProcessed)}}},
		{Name: "page", In: "query", Description: "Page number (1-indexed)", Schema: &Schema{Type: "integer", Minimum: &one, Default: 1, Example: 1}},
		{Name: "perPage", In: "query", Description: "Items per page", Schema: &Schema{Type: "integer", Minimum: &one, Default: 10, Example: 10}},
		{Name: "filter", In: "query", Description: "Filter by name", Schema: &Schema{Type: "string", Example: "pdf"}},
	}
}

func uploadSegment(kind upload.Kind) string {
	if kind == upload.KindAsset {
		return "assets"
	}
	return string(kind)
}

var uploadOperationIDs = map[upload.Kind]string{
	upload.KindAsset:     "uploadAssets",
	upload.KindProcessed: "uploadProcessed",
}

// OriginURL returns the origin clients used to reach the server: the Origin
// header, else the Referer header, else the request URL itself.
func OriginURL(r *http.Request) string {
	for _, candidate := range []string{r.Header.Get("Origin"), r.Header.Get("Referer")} {
		if origin, ok := originOf(candidate); ok {
			return origin
		}
	}

	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	if proto := r.Header.Get("X-Forwarded-Proto"); proto == "http" || proto == "https" {
		scheme = proto
	}
	return scheme + "://" + r.Host
}

func originOf(raw string) (string, bool) {
	if raw == "" {
		return "", false
	}
	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return "", false
	}
	return u.Scheme + "://" + u.Host, true
}
