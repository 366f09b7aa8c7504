package storage

import (
	"context"
	"strings"
	"testing"
	"time"
)

func TestMealPhotoKey(t *testing.T) {
	date := time.Date(2024, 1, 2, 15, 0, 0, 0, time.UTC)
	if got := MealPhotoKey(42, date, "abc"); got != "meals/42/2024-01-02/abc.jpg" {
		t.Fatalf("MealPhotoKey = %q", got)
	}
}

func TestSignedURL(t *testing.T) {
	service, err := New(context.Background(), Options{
		Endpoint:     "https://project.supabase.co/storage/v1/s3",
		Region:       "eu-central-1",
		Bucket:       "images",
		AccessKey:    "key",
		SecretKey:    "secret",
		SignedURLTTL: time.Hour,
	})
	if err != nil {
		t.Fatal(err)
	}

	url, err := service.SignedURL(context.Background(), "male-bodyfat.jpg")
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"https://project.supabase.co/storage/v1/s3/images/male-bodyfat.jpg", "X-Amz-Expires=3600", "X-Amz-Signature="} {
		if !strings.Contains(url, want) {
			t.Errorf("signed url %q misses %q", url, want)
		}
	}
}

func TestNewRequiresBucket(t *testing.T) {
	if _, err := New(context.Background(), Options{Region: "us-east-1"}); err == nil {
		t.Fatal("expected error without bucket")
	}
}
