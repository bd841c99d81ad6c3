package rpc

import (
	"encoding/json"
	"fmt"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/MixinNetwork/fraction/config"
	"github.com/MixinNetwork/fraction/logger"
	"github.com/MixinNetwork/fraction/storage"
	"github.com/VictoriaMetrics/fastcache"
	"github.com/dimfeld/httptreemux"
	"github.com/gofrs/uuid"
	"github.com/gorilla/handlers"
	"github.com/unrolled/render"
)

type R struct {
	custom *config.Custom
	store  storage.Store
	cache  *fastcache.Cache
}

type Call struct {
	Method string        `json:"method"`
	Params []interface{} `json:"params"`
}

func NewRouter(custom *config.Custom, store storage.Store) *httptreemux.TreeMux {
	impl := &R{
		custom: custom,
		store:  store,
		cache:  fastcache.New(custom.RPC.CacheSize * 1024 * 1024),
	}
	router := httptreemux.New()
	router.POST("/", impl.handle)
	registerHanders(router)
	return router
}

func registerHanders(router *httptreemux.TreeMux) {
	router.MethodNotAllowedHandler = func(w http.ResponseWriter, r *http.Request, _ map[string]httptreemux.HandlerFunc) {
		render.New().JSON(w, http.StatusNotFound, map[string]interface{}{})
	}
	router.NotFoundHandler = func(w http.ResponseWriter, r *http.Request) {
		render.New().JSON(w, http.StatusNotFound, map[string]interface{}{})
	}
	router.PanicHandler = func(w http.ResponseWriter, r *http.Request, rcv interface{}) {
		logger.Errorf("RPC panic %v\n%s", rcv, debug.Stack())
		render.New().JSON(w, http.StatusInternalServerError, map[string]interface{}{"error": fmt.Sprint(rcv)})
	}
}

func (impl *R) handle(w http.ResponseWriter, r *http.Request, _ map[string]string) {
	var call Call
	d := json.NewDecoder(r.Body)
	d.UseNumber()
	if err := d.Decode(&call); err != nil {
		render.New().JSON(w, http.StatusBadRequest, map[string]interface{}{"error": err.Error()})
		return
	}

	id := uuid.Must(uuid.NewV4()).String()
	start := time.Now()
	data, err := impl.dispatch(&call)
	logger.Lazy(logger.VERBOSE, func() string {
		return fmt.Sprintf("RPC %s %s %v %v %s", id, call.Method, call.Params, err, time.Since(start))
	})
	if err != nil {
		render.New().JSON(w, http.StatusOK, map[string]interface{}{"error": err.Error(), "id": id})
		return
	}
	render.New().JSON(w, http.StatusOK, map[string]interface{}{"data": data, "id": id})
}

func (impl *R) dispatch(call *Call) (interface{}, error) {
	switch call.Method {
	case "add", "sub", "mul", "div", "neg", "reciprocal", "compare", "isinteger", "integer":
		return evaluate(call)
	case "power", "fibonacci", "fibonacciprefix":
		return impl.cached(call)
	case "getinfo":
		return getInfo(impl.store)
	case "readrational":
		return readRational(impl.store, call.Params)
	case "writerational":
		return writeRational(impl.store, call.Params)
	case "removerational":
		return removeRational(impl.store, call.Params)
	case "listrationals":
		return impl.store.ListRationals()
	default:
		return nil, fmt.Errorf("invalid method %s", call.Method)
	}
}

// cached memoizes the JSON of the expensive pure methods, errors are not kept.
func (impl *R) cached(call *Call) (interface{}, error) {
	key := cacheKey(call)
	if val, found := impl.cache.HasGet(nil, key); found {
		return json.RawMessage(val), nil
	}
	data, err := evaluate(call)
	if err != nil {
		return nil, err
	}
	val, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}
	impl.cache.Set(key, val)
	return json.RawMessage(val), nil
}

func handleCORS(handler http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if origin == "" {
			handler.ServeHTTP(w, r)
			return
		}
		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Add("Access-Control-Allow-Headers", "Content-Type,Authorization")
		w.Header().Set("Access-Control-Allow-Methods", "OPTIONS,GET,POST,DELETE")
		w.Header().Set("Access-Control-Max-Age", "600")
		if r.Method == "OPTIONS" {
			render.New().JSON(w, http.StatusOK, map[string]interface{}{})
		} else {
			handler.ServeHTTP(w, r)
		}
	})
}

func NewHandler(custom *config.Custom, store storage.Store) http.Handler {
	router := NewRouter(custom, store)
	handler := handleCORS(router)
	handler = handleRateLimit(handler, newLimiterStore(custom.RPC.RateLimit, custom.RPC.RateBurst))
	return handlers.ProxyHeaders(handler)
}

func StartHTTP(custom *config.Custom, store storage.Store) error {
	handler := NewHandler(custom, store)
	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", custom.RPC.Port),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}
	logger.Printf("RPC listening on %s\n", server.Addr)
	return server.ListenAndServe()
}
