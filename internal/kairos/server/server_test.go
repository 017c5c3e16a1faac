package server

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/msto63/kairos/internal/kairos/service"
	"github.com/msto63/kairos/internal/kairos/store"
	"github.com/msto63/kairos/pkg/datetime"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
	"google.golang.org/protobuf/types/known/structpb"
)

const bufSize = 1024 * 1024

type testEnv struct {
	server *Server
	client *Client
	conn   *grpc.ClientConn
	store  store.Store
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	st := store.NewMemoryStore()
	svc := service.New(st, service.DefaultConfig())
	srv := New(DefaultConfig(), svc)

	lis := bufconn.Listen(bufSize)
	go srv.Serve(lis)

	client, err := Dial("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
	)
	if err != nil {
		t.Fatalf("Dial() error = %v", err)
	}

	t.Cleanup(func() {
		client.Close()
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		srv.Stop(ctx)
		svc.Close()
	})

	return &testEnv{server: srv, client: client, conn: client.conn, store: st}
}

func testContext(t *testing.T) context.Context {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	t.Cleanup(cancel)
	return ctx
}

func TestServer_Inspect(t *testing.T) {
	env := newTestEnv(t)
	ctx := testContext(t)

	in, err := env.client.Inspect(ctx, "2023-01-15T10:30:00")
	if err != nil {
		t.Fatalf("Inspect() error = %v", err)
	}
	if in.Value.String() != "2023-01-15 10:30:00" {
		t.Errorf("Value = %s", in.Value)
	}
	if in.Number != 202301151030 || in.DayOfWeek != 0 {
		t.Errorf("Number = %d, DayOfWeek = %d", in.Number, in.DayOfWeek)
	}
	if in.Fields == nil || in.Fields.Minute != 30 {
		t.Errorf("Fields = %+v", in.Fields)
	}

	null, err := env.client.Inspect(ctx, "+infinity")
	if err != nil {
		t.Fatal(err)
	}
	if !null.IsNull || !null.Value.IsNull() || null.Number != datetime.NullNumber {
		t.Errorf("Null inspection = %+v", null)
	}
}

func TestServer_ErrorCodes(t *testing.T) {
	env := newTestEnv(t)
	ctx := testContext(t)

	tests := []struct {
		name  string
		input string
		want  codes.Code
	}{
		{"invalid date", "2023-02-30", codes.InvalidArgument},
		{"garbage", "yesterday", codes.InvalidArgument},
		{"out of range", "2023011510300", codes.OutOfRange},
		{"missing", "", codes.InvalidArgument},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.client.Inspect(ctx, tt.input)
			if got := status.Code(err); got != tt.want {
				t.Errorf("Inspect(%q) code = %v, want %v (err %v)", tt.input, got, tt.want, err)
			}
		})
	}
}

func TestServer_AlignAndStep(t *testing.T) {
	env := newTestEnv(t)
	ctx := testContext(t)

	got, err := env.client.Align(ctx, "2023-05-17 13:45", datetime.Quarter, service.EdgeEnd)
	if err != nil {
		t.Fatal(err)
	}
	if got.String() != "2023-06-30 00:00:00" {
		t.Errorf("Align() = %s", got)
	}

	got, err = env.client.Step(ctx, "2023-01-15", datetime.Month, -2)
	if err != nil {
		t.Fatal(err)
	}
	if got.String() != "2022-11-01 00:00:00" {
		t.Errorf("Step() = %s", got)
	}
}

func TestServer_RangeAndTradingDays(t *testing.T) {
	env := newTestEnv(t)
	ctx := testContext(t)

	days, err := env.client.Range(ctx, "2023-12-30", "2024-01-02")
	if err != nil {
		t.Fatal(err)
	}
	if len(days) != 3 || days[2].String() != "2024-01-01 00:00:00" {
		t.Errorf("Range() = %v", days)
	}

	if err := env.store.AddHoliday(ctx, "XETR", datetime.MustParse("2023-12-25"), "Christmas"); err != nil {
		t.Fatal(err)
	}
	trading, err := env.client.TradingDays(ctx, "XETR", "2023-12-22", "2023-12-28")
	if err != nil {
		t.Fatal(err)
	}
	var got []string
	for _, d := range trading {
		got = append(got, d.String()[:10])
	}
	want := []string{"2023-12-22", "2023-12-26", "2023-12-27"}
	if len(got) != len(want) {
		t.Fatalf("TradingDays() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("TradingDays()[%d] = %s, want %s", i, got[i], want[i])
		}
	}
}

func TestServer_Bucket(t *testing.T) {
	env := newTestEnv(t)
	ctx := testContext(t)

	buckets, err := env.client.Bucket(ctx, []string{"2023-01-15", "2023-01-20", "2023-02-01"}, datetime.Month)
	if err != nil {
		t.Fatal(err)
	}
	if len(buckets) != 2 || buckets[0].Count() != 2 || buckets[1].Count() != 1 {
		t.Errorf("Bucket() = %+v", buckets)
	}
}

func TestServer_NowAndHealth(t *testing.T) {
	env := newTestEnv(t)
	ctx := testContext(t)

	now, err := env.client.Now(ctx)
	if err != nil {
		t.Fatal(err)
	}
	local := time.Now()
	if d := now.Time(time.Local).Sub(local); d > time.Minute || d < -time.Minute {
		t.Errorf("Now() = %s, local clock %s", now, local)
	}

	report, err := env.client.Health(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if report.Service != "kairos" || !report.Healthy() || len(report.Checks) != 2 {
		t.Errorf("Health() = %+v", report)
	}

	resp, err := grpc_health_v1.NewHealthClient(env.conn).Check(ctx, &grpc_health_v1.HealthCheckRequest{Service: ServiceName})
	if err != nil {
		t.Fatal(err)
	}
	if resp.Status != grpc_health_v1.HealthCheckResponse_SERVING {
		t.Errorf("grpc health = %v, want SERVING", resp.Status)
	}
}

func TestServer_RequestIDHeader(t *testing.T) {
	env := newTestEnv(t)
	ctx := metadata.AppendToOutgoingContext(testContext(t), "x-request-id", "req-7")

	req, _ := structpb.NewStruct(map[string]interface{}{"input": "2023-01-15"})
	var header metadata.MD
	if err := env.conn.Invoke(ctx, MethodInspect, req, new(structpb.Struct), grpc.Header(&header)); err != nil {
		t.Fatal(err)
	}
	if got := header.Get("x-request-id"); len(got) == 0 || got[0] != "req-7" {
		t.Errorf("x-request-id header = %v, want req-7", got)
	}
}

func TestServer_StepRejectsBadCount(t *testing.T) {
	env := newTestEnv(t)
	ctx := testContext(t)

	req, _ := structpb.NewStruct(map[string]interface{}{"input": "2023-01-15", "n": "many"})
	err := env.conn.Invoke(ctx, MethodStep, req, new(structpb.Struct))
	if status.Code(err) != codes.InvalidArgument {
		t.Errorf("Step(n=many) code = %v, want InvalidArgument", status.Code(err))
	}
}
