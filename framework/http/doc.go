// Package http provides Laravel-compatible request and response helpers.
//
// # Request
//
// Request wraps *http.Request. Besides input helpers it exposes the view the
// router matches on: Method, Path, Host, IP, Scheme and Header.
//
//	req := gohttp.NewRequest(r)
//
//	var payload struct {
//	    Name string `json:"name"`
//	}
//	if err := req.Bind(&payload); err != nil { ... }
//
//	name  := req.Input("name", "default")
//	page  := req.Query("page", "1")
//	token := req.BearerToken()
//
// # Response
//
//	res := gohttp.NewResponse(w)
//	res.Success(user)                    // 200 {"data": user}
//	res.Created(user)                    // 201 {"data": user}
//	res.NotFound()                       // 404 {"message": "Not found."}
//	res.Error(http.StatusConflict, "taken")
package http
