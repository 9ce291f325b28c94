package orderControllers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/PbxInder84/carzone-sub001/models"
	"github.com/gorilla/websocket"
)

// Broadcasting while clients connect and disconnect must not race on the
// client registry or write to a conn concurrently.
func TestBroadcastDuringClientChurn(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()
		registerWSClient(conn)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				unregisterWSClient(conn)
				return
			}
		}
	}))
	defer srv.Close()

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http")

	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		for i := 0; i < 25; i++ {
			conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
			if err != nil {
				continue
			}
			conn.Close()
		}
	}()

	go func() {
		defer wg.Done()
		for i := 0; i < 200; i++ {
			broadcastNewOrder(models.Order{OrderRef: "churn-ref"})
			broadcastOrderUpdate(models.Order{OrderRef: "churn-ref"})
		}
	}()

	wg.Wait()
}
