package controllers

import (
	"net/http"

	"blog-service/middleware"
	"blog-service/services"
)

func CreateBlog(svc *services.BlogService) http.HandlerFunc {
	return func(rw http.ResponseWriter, r *http.Request) {
		ctx, cancel := requestContext()
		defer cancel()

		body := struct {
			ID      string                 `json:"id"`
			Title   string                 `json:"title"`
			Des     string                 `json:"des"`
			Banner  string                 `json:"banner"`
			Tags    []string               `json:"tags"`
			Content map[string]interface{} `json:"content"`
			Draft   bool                   `json:"draft"`
		}{}
		if err := decodeBody(r, &body); err != nil {
			errorResponse(rw, err, http.StatusBadRequest)
			return
		}

		slug, err := svc.Publish(ctx, middleware.UserID(r), services.PublishBlogInput{
			ID:      body.ID,
			Title:   body.Title,
			Des:     body.Des,
			Banner:  body.Banner,
			Content: body.Content,
			Tags:    body.Tags,
			Draft:   body.Draft,
		})
		if err != nil {
			serviceErrorResponse(rw, err)
			return
		}
		successResponse(rw, "blog published successfully", map[string]string{"blog_id": slug})
	}
}

func GetBlog(svc *services.BlogService) http.HandlerFunc {
	return func(rw http.ResponseWriter, r *http.Request) {
		ctx, cancel := requestContext()
		defer cancel()

		body := struct {
			BlogID string `json:"blog_id"`
			Draft  bool   `json:"draft"`
			Mode   string `json:"mode"`
		}{}
		if err := decodeBody(r, &body); err != nil {
			errorResponse(rw, err, http.StatusBadRequest)
			return
		}

		blog, err := svc.Get(ctx, body.BlogID, body.Draft, body.Mode)
		if err != nil {
			serviceErrorResponse(rw, err)
			return
		}
		successResponse(rw, "blog fetched successfully", blog)
	}
}

func LatestBlogs(svc *services.BlogService) http.HandlerFunc {
	return func(rw http.ResponseWriter, r *http.Request) {
		ctx, cancel := requestContext()
		defer cancel()

		body := struct {
			Page int64 `json:"page"`
		}{}
		if err := decodeBody(r, &body); err != nil {
			errorResponse(rw, err, http.StatusBadRequest)
			return
		}

		blogs, err := svc.Latest(ctx, body.Page)
		if err != nil {
			serviceErrorResponse(rw, err)
			return
		}
		successResponse(rw, "latest blogs fetched successfully", blogs)
	}
}

func AllLatestBlogsCount(svc *services.BlogService) http.HandlerFunc {
	return func(rw http.ResponseWriter, r *http.Request) {
		ctx, cancel := requestContext()
		defer cancel()

		count, err := svc.LatestCount(ctx)
		if err != nil {
			serviceErrorResponse(rw, err)
			return
		}
		successResponse(rw, "latest blogs count fetched successfully",
			map[string]int64{"totalDocs": count})
	}
}

func TrendingBlogs(svc *services.BlogService) http.HandlerFunc {
	return func(rw http.ResponseWriter, r *http.Request) {
		ctx, cancel := requestContext()
		defer cancel()

		blogs, err := svc.Trending(ctx)
		if err != nil {
			serviceErrorResponse(rw, err)
			return
		}
		successResponse(rw, "trending blogs fetched successfully", blogs)
	}
}

type searchBlogsBody struct {
	Tag           string `json:"tag"`
	Query         string `json:"query"`
	Author        string `json:"author"`
	Page          int64  `json:"page"`
	Limit         int64  `json:"limit"`
	EliminateBlog string `json:"eliminate_blog"`
}

func SearchBlogs(svc *services.BlogService) http.HandlerFunc {
	return func(rw http.ResponseWriter, r *http.Request) {
		ctx, cancel := requestContext()
		defer cancel()

		body := searchBlogsBody{}
		if err := decodeBody(r, &body); err != nil {
			errorResponse(rw, err, http.StatusBadRequest)
			return
		}

		blogs, err := svc.Search(ctx, services.SearchBlogsInput{
			Tag:           body.Tag,
			Query:         body.Query,
			Author:        body.Author,
			EliminateBlog: body.EliminateBlog,
			Page:          body.Page,
			Limit:         body.Limit,
		})
		if err != nil {
			serviceErrorResponse(rw, err)
			return
		}
		successResponse(rw, "blogs fetched successfully", blogs)
	}
}

func SearchBlogsCount(svc *services.BlogService) http.HandlerFunc {
	return func(rw http.ResponseWriter, r *http.Request) {
		ctx, cancel := requestContext()
		defer cancel()

		body := searchBlogsBody{}
		if err := decodeBody(r, &body); err != nil {
			errorResponse(rw, err, http.StatusBadRequest)
			return
		}

		count, err := svc.SearchCount(ctx, services.SearchBlogsInput{
			Tag:    body.Tag,
			Query:  body.Query,
			Author: body.Author,
		})
		if err != nil {
			serviceErrorResponse(rw, err)
			return
		}
		successResponse(rw, "blogs count fetched successfully",
			map[string]int64{"totalDocs": count})
	}
}

func UserWrittenBlogs(svc *services.BlogService) http.HandlerFunc {
	return func(rw http.ResponseWriter, r *http.Request) {
		ctx, cancel := requestContext()
		defer cancel()

		body := struct {
			Page            int64  `json:"page"`
			Draft           bool   `json:"draft"`
			Query           string `json:"query"`
			DeletedDocCount int64  `json:"deletedDocCount"`
		}{}
		if err := decodeBody(r, &body); err != nil {
			errorResponse(rw, err, http.StatusBadRequest)
			return
		}

		blogs, err := svc.UserWritten(ctx, middleware.UserID(r), body.Draft, body.Query, body.Page, body.DeletedDocCount)
		if err != nil {
			serviceErrorResponse(rw, err)
			return
		}
		successResponse(rw, "user written blogs fetched successfully", blogs)
	}
}

func UserWrittenBlogsCount(svc *services.BlogService) http.HandlerFunc {
	return func(rw http.ResponseWriter, r *http.Request) {
		ctx, cancel := requestContext()
		defer cancel()

		body := struct {
			Draft bool   `json:"draft"`
			Query string `json:"query"`
		}{}
		if err := decodeBody(r, &body); err != nil {
			errorResponse(rw, err, http.StatusBadRequest)
			return
		}

		count, err := svc.UserWrittenCount(ctx, middleware.UserID(r), body.Draft, body.Query)
		if err != nil {
			serviceErrorResponse(rw, err)
			return
		}
		successResponse(rw, "user written blogs count fetched successfully",
			map[string]int64{"totalDocs": count})
	}
}

func DeleteBlog(svc *services.BlogService) http.HandlerFunc {
	return func(rw http.ResponseWriter, r *http.Request) {
		ctx, cancel := requestContext()
		defer cancel()

		body := struct {
			BlogID string `json:"blog_id"`
		}{}
		if err := decodeBody(r, &body); err != nil {
			errorResponse(rw, err, http.StatusBadRequest)
			return
		}

		if err := svc.Delete(ctx, body.BlogID, middleware.UserID(r)); err != nil {
			serviceErrorResponse(rw, err)
			return
		}
		successResponse(rw, "blog deleted successfully", nil)
	}
}
