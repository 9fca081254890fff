package queryparams

import "testing"

func TestListParamsValidate(t *testing.T) {
	cases := []struct {
		name    string
		in      ListParams
		page    int
		perPage int
		orderBy string
	}{
		{"varsayılanlar", ListParams{}, DefaultPage, DefaultPerPage, "desc"},
		{"negatif sayfa", ListParams{Page: -3, PerPage: 10}, DefaultPage, 10, "desc"},
		{"limit aşımı", ListParams{Page: 2, PerPage: 500}, 2, MaxPerPage, "desc"},
		{"asc korunur", ListParams{Page: 1, PerPage: 5, OrderBy: "ASC"}, 1, 5, "asc"},
		{"geçersiz sıralama", ListParams{Page: 1, PerPage: 5, OrderBy: "rastgele"}, 1, 5, "desc"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tc.in.Validate()
			if tc.in.Page != tc.page || tc.in.PerPage != tc.perPage || tc.in.OrderBy != tc.orderBy {
				t.Errorf("beklenen (%d, %d, %s), alınan (%d, %d, %s)",
					tc.page, tc.perPage, tc.orderBy, tc.in.Page, tc.in.PerPage, tc.in.OrderBy)
			}
		})
	}
}

func TestOffset(t *testing.T) {
	p := ListParams{Page: 3, PerPage: 20}
	if got := p.Offset(); got != 40 {
		t.Errorf("offset 40 olmalıydı, alınan: %d", got)
	}
}

func TestCalculateMeta(t *testing.T) {
	p := ListParams{Page: 2, PerPage: 10}
	meta := p.CalculateMeta(25)
	if meta.TotalItems != 25 || meta.TotalPages != 3 || meta.CurrentPage != 2 || meta.PerPage != 10 {
		t.Errorf("meta hatalı: %+v", meta)
	}

	empty := ListParams{Page: 1, PerPage: 10}
	if got := empty.CalculateMeta(0).TotalPages; got != 1 {
		t.Errorf("boş listede 1 sayfa bekleniyordu, alınan: %d", got)
	}
}
