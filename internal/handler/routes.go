package handler

import "net/http"

// Routes groups the handlers mounted on the API mux.
type Routes struct {
	Base    *Handler
	Donor   *DonorHandler
	Needy   *NeedyHandler
	Admin   *AdminHandler
	Contact *ContactHandler
	Auth    *AuthHandler
	// Limiter guards the contact form and sign-in. Nil disables limiting.
	Limiter *RateLimiter
	// Uploads serves stored documents under /uploads/. Nil leaves it unmounted.
	Uploads http.Handler
}

// Handler builds the complete middleware-wrapped HTTP handler.
func (rt Routes) Handler() http.Handler {
	limit := func(h http.HandlerFunc) http.Handler {
		if rt.Limiter == nil {
			return h
		}
		return rt.Limiter.Middleware(h)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/health", rt.Base.Health)

	mux.HandleFunc("GET /api/donor", rt.Donor.List)
	mux.HandleFunc("POST /api/donor", rt.Donor.Create)
	mux.HandleFunc("GET /api/donor/{id}", rt.Donor.Get)
	mux.HandleFunc("PUT /api/donor/{id}", rt.Donor.Update)
	mux.HandleFunc("POST /api/donor/create-payment-intent", rt.Donor.CreatePaymentIntent)

	mux.HandleFunc("GET /api/needy", rt.Needy.List)
	mux.HandleFunc("POST /api/needy", rt.Needy.Create)
	mux.HandleFunc("GET /api/needy/{id}", rt.Needy.Get)
	mux.HandleFunc("PUT /api/needy/{id}", rt.Needy.Update)

	mux.HandleFunc("GET /api/admin/all-users", rt.Admin.AllUsers)
	mux.HandleFunc("GET /api/admin/pdf/{id}", rt.Admin.PDF)
	mux.HandleFunc("PUT /api/admin/approve", rt.Admin.Approve)

	mux.Handle("POST /api/contact", limit(rt.Contact.Submit))

	mux.HandleFunc("GET /auth/users", rt.Auth.ListUsers)
	mux.HandleFunc("POST /auth/users", rt.Auth.Register)
	mux.Handle("POST /auth/signin", limit(rt.Auth.SignIn))

	if rt.Uploads != nil {
		mux.Handle("GET /uploads/", http.StripPrefix("/uploads/", rt.Uploads))
	}

	return RequestLogger(SecurityHeaders(rt.Base.CORS(mux)))
}
