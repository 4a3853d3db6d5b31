package notify

import (
	"strings"
	"testing"
)

func TestBuildOrderPaidIndonesian(t *testing.T) {
	text := BuildOrderPaid("id", "Budi", []string{"mug keramik", "kaos polos"},
		"0f4ad1f2-0000-0000-0000-000000000000", "https://shop.example.com/track/x")
	if !strings.Contains(text, "Halo Budi!") {
		t.Fatalf("greeting missing: %q", text)
	}
	if !strings.Contains(text, "Mug Keramik, Kaos Polos") {
		t.Fatalf("title-cased product list missing: %q", text)
	}
	if !strings.Contains(text, "0f4ad1f2") {
		t.Fatalf("short order id missing: %q", text)
	}
	if strings.Contains(text, "0f4ad1f2-0000") {
		t.Fatalf("order id not shortened: %q", text)
	}
}

func TestBuildOrderPaidEnglishDefault(t *testing.T) {
	text := BuildOrderPaid("fr", "Alex", []string{"tote bag"}, "abc", "https://shop.example.com/track/x")
	if !strings.Contains(text, "Hi Alex!") {
		t.Fatalf("unsupported locale must fall back to english: %q", text)
	}
	if !strings.Contains(text, "Tote Bag") {
		t.Fatalf("title-cased product missing: %q", text)
	}
}

func TestBuildOrderPaidWithoutProductNames(t *testing.T) {
	id := BuildOrderPaid("id", "Budi", nil, "abc", "https://x")
	if !strings.Contains(id, "pesanan custom") {
		t.Fatalf("indonesian fallback item missing: %q", id)
	}
	en := BuildOrderPaid("en", "Alex", []string{"", "  "}, "abc", "https://x")
	if !strings.Contains(en, "custom order") {
		t.Fatalf("english fallback item missing: %q", en)
	}
}

func TestBuildOrderShipped(t *testing.T) {
	if text := BuildOrderShipped("id", "Budi", "abc", "https://x"); !strings.Contains(text, "sudah dikirim") {
		t.Fatalf("indonesian shipped text mismatch: %q", text)
	}
	if text := BuildOrderShipped("en-US", "Alex", "abc", "https://x"); !strings.Contains(text, "has shipped") {
		t.Fatalf("english shipped text mismatch: %q", text)
	}
}
