package grpc

import (
	"context"
	"io"
	"math"
	"net"
	"testing"

	"github.com/gabinork/Gabi-Nork-Tech-2/internal/repository"
	"github.com/gabinork/Gabi-Nork-Tech-2/internal/usecase"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
	"google.golang.org/protobuf/types/known/structpb"
)

func dialCatalog(t *testing.T) *grpc.ClientConn {
	t.Helper()
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	lis := bufconn.Listen(1024 * 1024)
	server := grpc.NewServer()
	catalog := usecase.NewCatalogUseCase(repository.NewStaticProductRepository(logger), logger)
	Register(server, catalog, logger)

	healthServer := health.NewServer()
	healthServer.SetServingStatus(CatalogServiceName, healthpb.HealthCheckResponse_SERVING)
	healthpb.RegisterHealthServer(server, healthServer)

	go func() { _ = server.Serve(lis) }()
	t.Cleanup(server.Stop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func TestCatalogListProducts(t *testing.T) {
	conn := dialCatalog(t)
	ctx := context.Background()

	req, err := structpb.NewStruct(map[string]any{
		"categories": []any{"Audio"},
		"max_price":  200000,
	})
	require.NoError(t, err)

	resp := new(structpb.Struct)
	require.NoError(t, conn.Invoke(ctx, "/"+CatalogServiceName+"/ListProducts", req, resp))

	fields := resp.GetFields()
	assert.Equal(t, float64(1), fields["count"].GetNumberValue())
	products := fields["products"].GetListValue().GetValues()
	require.Len(t, products, 1)
	product := products[0].GetStructValue().GetFields()
	assert.Equal(t, "3", product["id"].GetStringValue())
	assert.Equal(t, "₦150,000", product["price_display"].GetStringValue())
}

func TestCatalogListProductsRejectsUnknownCategory(t *testing.T) {
	conn := dialCatalog(t)

	req, err := structpb.NewStruct(map[string]any{"categories": []any{"Toasters"}})
	require.NoError(t, err)

	err = conn.Invoke(context.Background(), "/"+CatalogServiceName+"/ListProducts", req, new(structpb.Struct))
	assert.Equal(t, codes.InvalidArgument, status.Code(err))
}

func TestCatalogGetProduct(t *testing.T) {
	conn := dialCatalog(t)
	ctx := context.Background()

	req, err := structpb.NewStruct(map[string]any{"id": "5"})
	require.NoError(t, err)
	resp := new(structpb.Struct)
	require.NoError(t, conn.Invoke(ctx, "/"+CatalogServiceName+"/GetProduct", req, resp))
	assert.Equal(t, "Gaming Beast G7", resp.GetFields()["name"].GetStringValue())

	missing, err := structpb.NewStruct(map[string]any{"id": "99"})
	require.NoError(t, err)
	err = conn.Invoke(ctx, "/"+CatalogServiceName+"/GetProduct", missing, new(structpb.Struct))
	assert.Equal(t, codes.NotFound, status.Code(err))

	err = conn.Invoke(ctx, "/"+CatalogServiceName+"/GetProduct", &structpb.Struct{}, new(structpb.Struct))
	assert.Equal(t, codes.InvalidArgument, status.Code(err))
}

func TestCatalogHealth(t *testing.T) {
	conn := dialCatalog(t)

	resp, err := healthpb.NewHealthClient(conn).Check(context.Background(), &healthpb.HealthCheckRequest{Service: CatalogServiceName})
	require.NoError(t, err)
	assert.Equal(t, healthpb.HealthCheckResponse_SERVING, resp.GetStatus())
}

func TestCatalogListProductsRejectsBadMaxPrice(t *testing.T) {
	conn := dialCatalog(t)

	tests := []struct {
		name  string
		value *structpb.Value
	}{
		{"nan", structpb.NewNumberValue(math.NaN())},
		{"infinite", structpb.NewNumberValue(math.Inf(1))},
		{"above int64", structpb.NewNumberValue(1e19)},
		{"negative", structpb.NewNumberValue(-1)},
		{"fractional", structpb.NewNumberValue(1.5)},
		{"not a number", structpb.NewStringValue("cheap")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := &structpb.Struct{Fields: map[string]*structpb.Value{"max_price": tt.value}}
			err := conn.Invoke(context.Background(), "/"+CatalogServiceName+"/ListProducts", req, new(structpb.Struct))
			assert.Equal(t, codes.InvalidArgument, status.Code(err))
		})
	}
}

func TestParseMaxPrice(t *testing.T) {
	got, err := parseMaxPrice(structpb.NewNumberValue(400000))
	require.NoError(t, err)
	assert.Equal(t, int64(400000), got)
}
