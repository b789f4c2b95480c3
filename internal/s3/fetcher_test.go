package s3

import "testing"

func TestNewFetcher(t *testing.T) {
	config := &Config{
		Region:     "us-east-1",
		AccessKey:  "test-access-key",
		SecretKey:  "test-secret-key",
		BucketName: "test-bucket",
	}

	fetcher, err := NewFetcher(config)
	if err != nil {
		t.Fatalf("Ошибка создания fetcher: %v", err)
	}
	if fetcher == nil {
		t.Fatal("Fetcher не должен быть nil")
	}
	if fetcher.downloader == nil {
		t.Error("Downloader должен быть инициализирован")
	}
	if fetcher.s3Client == nil {
		t.Error("S3 клиент должен быть инициализирован")
	}
}

func TestNewFetcherWithEndpoint(t *testing.T) {
	config := &Config{
		Region:     "ru-central1",
		AccessKey:  "test-access-key",
		SecretKey:  "test-secret-key",
		Endpoint:   "https://storage.yandexcloud.net",
		BucketName: "test-bucket",
	}

	fetcher, err := NewFetcher(config)
	if err != nil {
		t.Fatalf("Ошибка создания fetcher с endpoint: %v", err)
	}
	if fetcher == nil {
		t.Fatal("Fetcher не должен быть nil")
	}
}
