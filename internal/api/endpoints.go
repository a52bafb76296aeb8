package api

import (
	"net/url"
	"strings"
)

// Policy decides what a failed call returns to the caller.
type Policy int

const (
	// PolicyPropagate returns the typed error to the caller.
	PolicyPropagate Policy = iota
	// PolicyDegrade logs the failure and returns an empty collection.
	PolicyDegrade
)

func (p Policy) String() string {
	if p == PolicyDegrade {
		return "degrade"
	}
	return "propagate"
}

type EndpointName string

const (
	EndpointListBooks            EndpointName = "ListBooks"
	EndpointGetBook              EndpointName = "GetBook"
	EndpointListBookLessons      EndpointName = "ListBookLessons"
	EndpointGetBookLesson        EndpointName = "GetBookLesson"
	EndpointListLessons          EndpointName = "ListLessons"
	EndpointListLessonTitles     EndpointName = "ListLessonTitles"
	EndpointListBookLessonTitles EndpointName = "ListBookLessonTitles"
	EndpointGetMetadata          EndpointName = "GetMetadata"
	EndpointGetBookMetadata      EndpointName = "GetBookMetadata"
	EndpointGetBookRuleCount     EndpointName = "GetBookRuleCount"
	EndpointListVocabulary       EndpointName = "ListVocabulary"
	EndpointListBookVocabulary   EndpointName = "ListBookVocabulary"
	EndpointListLessonVocabulary EndpointName = "ListLessonVocabulary"
)

// Endpoint describes one backend resource. Path placeholders in braces are
// filled positionally.
type Endpoint struct {
	Name   EndpointName
	Path   string
	Policy Policy
}

// Endpoints is the full backend surface used by the client.
var Endpoints = map[EndpointName]Endpoint{
	EndpointListBooks:            {EndpointListBooks, "/books", PolicyDegrade},
	EndpointGetBook:              {EndpointGetBook, "/books/{bookId}", PolicyPropagate},
	EndpointListBookLessons:      {EndpointListBookLessons, "/books/{bookId}/lessons", PolicyDegrade},
	EndpointGetBookLesson:        {EndpointGetBookLesson, "/books/{bookId}/lessons/{lessonId}", PolicyPropagate},
	EndpointListLessons:          {EndpointListLessons, "/lessons", PolicyDegrade},
	EndpointListLessonTitles:     {EndpointListLessonTitles, "/lesson-titles", PolicyDegrade},
	EndpointListBookLessonTitles: {EndpointListBookLessonTitles, "/books/{bookId}/lesson-titles", PolicyDegrade},
	EndpointGetMetadata:          {EndpointGetMetadata, "/metadata", PolicyPropagate},
	EndpointGetBookMetadata:      {EndpointGetBookMetadata, "/books/{bookId}/metadata", PolicyPropagate},
	EndpointGetBookRuleCount:     {EndpointGetBookRuleCount, "/books/{bookId}/rule-count", PolicyPropagate},
	EndpointListVocabulary:       {EndpointListVocabulary, "/vocabulary", PolicyDegrade},
	EndpointListBookVocabulary:   {EndpointListBookVocabulary, "/books/{bookId}/vocabulary", PolicyDegrade},
	EndpointListLessonVocabulary: {EndpointListLessonVocabulary, "/books/{bookId}/lessons/{lessonId}/vocabulary", PolicyDegrade},
}

// Expand substitutes path-escaped params into the placeholders in order.
func (e Endpoint) Expand(params ...string) string {
	segments := strings.Split(e.Path, "/")
	next := 0
	for i, segment := range segments {
		if next >= len(params) {
			break
		}
		if strings.HasPrefix(segment, "{") && strings.HasSuffix(segment, "}") {
			segments[i] = url.PathEscape(params[next])
			next++
		}
	}
	return strings.Join(segments, "/")
}
