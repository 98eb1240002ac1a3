package enums

import "testing"

func TestParseWishlistAction(t *testing.T) {
	tests := []struct {
		in      string
		want    WishlistAction
		wantErr bool
	}{
		{in: "check", want: WishlistActionCheck},
		{in: " ADD ", want: WishlistActionAdd},
		{in: "remove", want: WishlistActionRemove},
		{in: "toggle", wantErr: true},
		{in: "", wantErr: true},
	}
	for _, tt := range tests {
		got, err := ParseWishlistAction(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Fatalf("expected error for %q", tt.in)
			}
			continue
		}
		if err != nil {
			t.Fatalf("unexpected error for %q: %v", tt.in, err)
		}
		if got != tt.want {
			t.Fatalf("expected %s got %s", tt.want, got)
		}
	}
}

func TestWishlistActionIsMutation(t *testing.T) {
	if WishlistActionCheck.IsMutation() {
		t.Fatal("check is read-only")
	}
	if !WishlistActionAdd.IsMutation() || !WishlistActionRemove.IsMutation() {
		t.Fatal("add and remove mutate state")
	}
}

func TestParseStoreStatus(t *testing.T) {
	if s, err := ParseStoreStatus("uninstalled"); err != nil || s != StoreStatusUninstalled {
		t.Fatalf("unexpected parse result %q %v", s, err)
	}
	if _, err := ParseStoreStatus("paused"); err == nil {
		t.Fatal("expected invalid status error")
	}
	if !StoreStatusInstalled.IsValid() {
		t.Fatal("installed should be valid")
	}
}
