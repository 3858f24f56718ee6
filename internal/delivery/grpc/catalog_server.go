package grpc

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/gabinork/Gabi-Nork-Tech-2/internal/domain"
	"github.com/gabinork/Gabi-Nork-Tech-2/internal/usecase"
	"github.com/gabinork/Gabi-Nork-Tech-2/pkg/money"
	"github.com/sirupsen/logrus"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
)

const CatalogServiceName = "storefront.v1.Catalog"

// CatalogServer exposes the read-only product catalog. Requests and replies
// are google.protobuf.Struct so no generated stubs are needed.
type CatalogServer interface {
	ListProducts(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
	GetProduct(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
}

var CatalogServiceDesc = grpc.ServiceDesc{
	ServiceName: CatalogServiceName,
	HandlerType: (*CatalogServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "ListProducts", Handler: listProductsHandler},
		{MethodName: "GetProduct", Handler: getProductHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "storefront/v1/catalog.proto",
}

func listProductsHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(CatalogServer).ListProducts(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/" + CatalogServiceName + "/ListProducts"}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(CatalogServer).ListProducts(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

func getProductHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(CatalogServer).GetProduct(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/" + CatalogServiceName + "/GetProduct"}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(CatalogServer).GetProduct(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

type CatalogHandler struct {
	catalog domain.CatalogUseCase
	log     *logrus.Logger
}

func NewCatalogHandler(catalog domain.CatalogUseCase, logger *logrus.Logger) *CatalogHandler {
	return &CatalogHandler{
		catalog: catalog,
		log:     logger,
	}
}

// Register attaches the catalog service to server.
func Register(server *grpc.Server, catalog domain.CatalogUseCase, logger *logrus.Logger) {
	server.RegisterService(&CatalogServiceDesc, NewCatalogHandler(catalog, logger))
}

func (h *CatalogHandler) ListProducts(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	fields := req.GetFields()
	filter := domain.ProductFilter{
		MaxPrice: usecase.DefaultMaxPrice,
		Query:    fields["query"].GetStringValue(),
	}
	for _, v := range fields["categories"].GetListValue().GetValues() {
		category := domain.Category(strings.TrimSpace(v.GetStringValue()))
		if !domain.IsValidCategory(category) {
			return nil, status.Errorf(codes.InvalidArgument, "invalid category '%s'", category)
		}
		filter.Categories = append(filter.Categories, category)
	}
	if v, ok := fields["max_price"]; ok {
		maxPrice, err := parseMaxPrice(v)
		if err != nil {
			return nil, status.Error(codes.InvalidArgument, err.Error())
		}
		filter.MaxPrice = maxPrice
	}
	h.log.Infof("gRPC Handler: Received ListProducts request: %+v", filter)

	products := h.catalog.ListProducts(filter)
	list := make([]any, 0, len(products))
	for _, p := range products {
		m, err := productFields(p)
		if err != nil {
			h.log.Errorf("gRPC Handler: Failed to encode product %s: %v", p.ID, err)
			return nil, status.Errorf(codes.Internal, "Internal server error: %v", err)
		}
		list = append(list, m)
	}

	resp, err := structpb.NewStruct(map[string]any{
		"products": list,
		"count":    len(list),
	})
	if err != nil {
		return nil, status.Errorf(codes.Internal, "Internal server error: %v", err)
	}
	return resp, nil
}

func (h *CatalogHandler) GetProduct(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	id := strings.TrimSpace(req.GetFields()["id"].GetStringValue())
	h.log.Infof("gRPC Handler: Received GetProduct request: ID=%s", id)
	if id == "" {
		return nil, status.Error(codes.InvalidArgument, "Product ID cannot be empty")
	}

	product, err := h.catalog.GetProductByID(id)
	if err != nil {
		h.log.Warnf("gRPC Handler: GetProduct use case error for ID %s: %v", id, err)
		return nil, mapDomainErrorToGrpcStatus(err)
	}

	m, err := productFields(*product)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "Internal server error: %v", err)
	}
	resp, err := structpb.NewStruct(m)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "Internal server error: %v", err)
	}
	return resp, nil
}

// parseMaxPrice accepts whole, finite, non-negative numbers that fit in int64.
func parseMaxPrice(v *structpb.Value) (int64, error) {
	n, ok := v.GetKind().(*structpb.Value_NumberValue)
	if !ok {
		return 0, errors.New("invalid max_price: must be a number")
	}
	f := n.NumberValue
	switch {
	case math.IsNaN(f) || math.IsInf(f, 0):
		return 0, errors.New("invalid max_price: must be finite")
	case f < 0:
		return 0, errors.New("invalid max_price: cannot be negative")
	case f >= math.MaxInt64:
		return 0, errors.New("invalid max_price: out of range")
	case f != math.Trunc(f):
		return 0, errors.New("invalid max_price: must be a whole number")
	}
	return int64(f), nil
}

// productFields renders p with the same keys the HTTP API uses.
func productFields(p domain.Product) (map[string]any, error) {
	raw, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal product: %w", err)
	}
	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("failed to unmarshal product: %w", err)
	}
	m["price_display"] = money.FormatNGN(p.Price)
	return m, nil
}

func mapDomainErrorToGrpcStatus(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrProductNotFound) {
		return status.Error(codes.NotFound, err.Error())
	}
	errMsg := strings.ToLower(err.Error())

	switch {
	case strings.Contains(errMsg, "not found"):
		return status.Error(codes.NotFound, err.Error())
	case strings.Contains(errMsg, "invalid"),
		strings.Contains(errMsg, "cannot be empty"):
		return status.Error(codes.InvalidArgument, err.Error())
	default:
		return status.Errorf(codes.Internal, "Internal server error: %v", err)
	}
}
