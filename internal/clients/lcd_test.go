package clients

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fakeLCD serves the subset of the cosmos REST API the deployer uses
type fakeLCD struct {
	mu sync.Mutex

	accountNumber string
	sequence      string
	gasUsed       string
	checkCode     uint32
	checkLog      string
	notFoundPolls int
	deliver       *TxResult

	simulated   [][]byte
	broadcasted [][]byte
	lookups     int
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func decodeTxBytes(t *testing.T, r *http.Request) []byte {
	var body struct {
		TxBytes string `json:"tx_bytes"`
		Mode    string `json:"mode"`
	}
	assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
	txBytes, err := base64.StdEncoding.DecodeString(body.TxBytes)
	assert.NoError(t, err)
	return txBytes
}

func (f *fakeLCD) server(t *testing.T) *httptest.Server {
	mux := http.NewServeMux()

	mux.HandleFunc("/cosmos/auth/v1beta1/accounts/", func(w http.ResponseWriter, r *http.Request) {
		if f.accountNumber == "" {
			writeJSON(w, http.StatusNotFound, map[string]interface{}{"code": 5, "message": "account not found"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"account": map[string]interface{}{
				"@type":          "/cosmos.auth.v1beta1.BaseAccount",
				"address":        r.URL.Path[len("/cosmos/auth/v1beta1/accounts/"):],
				"account_number": f.accountNumber,
				"sequence":       f.sequence,
			},
		})
	})

	mux.HandleFunc("/cosmos/tx/v1beta1/simulate", func(w http.ResponseWriter, r *http.Request) {
		txBytes := decodeTxBytes(t, r)
		f.mu.Lock()
		f.simulated = append(f.simulated, txBytes)
		f.mu.Unlock()
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"gas_info": map[string]string{"gas_wanted": "0", "gas_used": f.gasUsed},
		})
	})

	mux.HandleFunc("/cosmos/tx/v1beta1/txs", func(w http.ResponseWriter, r *http.Request) {
		txBytes := decodeTxBytes(t, r)
		f.mu.Lock()
		f.broadcasted = append(f.broadcasted, txBytes)
		f.mu.Unlock()
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"tx_response": map[string]interface{}{
				"height":     "0",
				"txhash":     TxHash(txBytes),
				"code":       f.checkCode,
				"codespace":  "",
				"raw_log":    f.checkLog,
				"gas_wanted": "0",
				"gas_used":   "0",
			},
		})
	})

	mux.HandleFunc("/cosmos/tx/v1beta1/txs/", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		f.lookups++
		lookups := f.lookups
		f.mu.Unlock()

		if lookups <= f.notFoundPolls || f.deliver == nil {
			writeJSON(w, http.StatusNotFound, map[string]interface{}{"code": 5, "message": "tx not found"})
			return
		}
		res := *f.deliver
		res.TxHash = r.URL.Path[len("/cosmos/tx/v1beta1/txs/"):]
		writeJSON(w, http.StatusOK, map[string]interface{}{"tx_response": res})
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestLCDClientAccount(t *testing.T) {
	fake := &fakeLCD{accountNumber: "17", sequence: "3"}
	lcd := NewLCDClient(zap.NewNop(), fake.server(t).URL, 5*time.Second)

	accountNumber, sequence, err := lcd.Account(context.Background(), "terra1abc")
	require.NoError(t, err)
	assert.Equal(t, uint64(17), accountNumber)
	assert.Equal(t, uint64(3), sequence)
}

func TestLCDClientAccount_NotFound(t *testing.T) {
	fake := &fakeLCD{}
	lcd := NewLCDClient(zap.NewNop(), fake.server(t).URL, 5*time.Second)

	_, _, err := lcd.Account(context.Background(), "terra1abc")
	assert.ErrorIs(t, err, ErrAccountNotFound)
}

func TestLCDClientAccount_Vesting(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"account": map[string]interface{}{
				"@type": "/cosmos.vesting.v1beta1.ContinuousVestingAccount",
				"base_vesting_account": map[string]interface{}{
					"base_account": map[string]string{"account_number": "4", "sequence": "8"},
				},
			},
		})
	}))
	defer srv.Close()

	lcd := NewLCDClient(zap.NewNop(), srv.URL, 5*time.Second)
	accountNumber, sequence, err := lcd.Account(context.Background(), "terra1abc")
	require.NoError(t, err)
	assert.Equal(t, uint64(4), accountNumber)
	assert.Equal(t, uint64(8), sequence)
}

func TestLCDClientSimulate(t *testing.T) {
	fake := &fakeLCD{gasUsed: "123456"}
	lcd := NewLCDClient(zap.NewNop(), fake.server(t).URL+"/", 5*time.Second)

	gas, err := lcd.Simulate(context.Background(), []byte{1, 2, 3})
	require.NoError(t, err)
	assert.Equal(t, uint64(123456), gas)
	require.Len(t, fake.simulated, 1)
	assert.Equal(t, []byte{1, 2, 3}, fake.simulated[0])
}

func TestLCDClientSimulate_Error(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusBadRequest, map[string]interface{}{"code": 3, "message": "out of gas"})
	}))
	defer srv.Close()

	lcd := NewLCDClient(zap.NewNop(), srv.URL, 5*time.Second)
	_, err := lcd.Simulate(context.Background(), []byte{1})

	var lcdErr *LCDError
	require.ErrorAs(t, err, &lcdErr)
	assert.Equal(t, http.StatusBadRequest, lcdErr.StatusCode)
	assert.Equal(t, 3, lcdErr.Code)
	assert.Equal(t, "out of gas", lcdErr.Message)
}

func TestLCDClientGetTx_NotFound(t *testing.T) {
	fake := &fakeLCD{}
	lcd := NewLCDClient(zap.NewNop(), fake.server(t).URL, 5*time.Second)

	_, err := lcd.GetTx(context.Background(), "AB12")
	assert.ErrorIs(t, err, ErrTxNotFound)
}

func TestLCDClientBroadcastTx(t *testing.T) {
	fake := &fakeLCD{checkCode: 13, checkLog: "insufficient fee"}
	lcd := NewLCDClient(zap.NewNop(), fake.server(t).URL, 5*time.Second)

	res, err := lcd.BroadcastTx(context.Background(), []byte{9, 9}, BroadcastModeSync)
	require.NoError(t, err)
	assert.Equal(t, uint32(13), res.Code)
	assert.Equal(t, "insufficient fee", res.RawLog)
	assert.Equal(t, TxHash([]byte{9, 9}), res.TxHash)
}

func TestLCDClientAccount_ModuleAccount(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"account": map[string]interface{}{
				"@type":        "/cosmos.auth.v1beta1.ModuleAccount",
				"base_account": map[string]string{"account_number": "21", "sequence": "2"},
				"name":         "fee_collector",
			},
		})
	}))
	defer srv.Close()

	lcd := NewLCDClient(zap.NewNop(), srv.URL, 5*time.Second)
	accountNumber, sequence, err := lcd.Account(context.Background(), "terra1abc")
	require.NoError(t, err)
	assert.Equal(t, uint64(21), accountNumber)
	assert.Equal(t, uint64(2), sequence)
}
