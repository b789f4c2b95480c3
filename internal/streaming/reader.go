// Package streaming содержит буферизованный ридер для фоновых треков,
// воспроизводимых по сети
package streaming

import (
	"bufio"
	"context"
	"fmt"
	"net"
	"net/http"
	"time"
)

// Reader представляет буферизованный поток для чтения аудио данных порциями
type Reader struct {
	reader *bufio.Reader
	resp   *http.Response
}

// NewReader создает новый потоковый ридер для указанного URL
func NewReader(ctx context.Context, url string, bufferSize int) (*Reader, error) {
	// HTTP клиент без общего таймаута: фоновый трек читается столько,
	// сколько играет. Ограничиваем только фазы установки соединения.
	client := &http.Client{
		Transport: &http.Transport{
			DialContext: (&net.Dialer{
				Timeout:   30 * time.Second,
				KeepAlive: 30 * time.Second,
			}).DialContext,
			TLSHandshakeTimeout:   10 * time.Second,
			ResponseHeaderTimeout: 30 * time.Second,
			IdleConnTimeout:       300 * time.Second,
			MaxIdleConns:          10,
			MaxIdleConnsPerHost:   2,
			ExpectContinueTimeout: 1 * time.Second,
		},
	}

	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, fmt.Errorf("ошибка создания запроса: %w", err)
	}

	// Заголовки для устойчивого потокового чтения
	req.Header.Set("Accept-Encoding", "identity")
	req.Header.Set("Range", "bytes=0-")
	req.Header.Set("Connection", "keep-alive")
	req.Header.Set("User-Agent", "go-soundbox/1.0")

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("ошибка выполнения запроса: %w", err)
	}

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusPartialContent {
		resp.Body.Close()
		return nil, fmt.Errorf("ошибка HTTP: %s", resp.Status)
	}

	return &Reader{
		reader: bufio.NewReaderSize(resp.Body, bufferSize),
		resp:   resp,
	}, nil
}

// Read реализует интерфейс io.Reader
func (r *Reader) Read(p []byte) (n int, err error) {
	return r.reader.Read(p)
}

// Close закрывает соединение
func (r *Reader) Close() error {
	return r.resp.Body.Close()
}

// ContentLength возвращает размер потока в байтах или -1, если сервер
// его не сообщил
func (r *Reader) ContentLength() int64 {
	return r.resp.ContentLength
}
