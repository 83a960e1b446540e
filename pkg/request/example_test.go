package request_test

import (
	"context"
	"fmt"
	"log"
	"os"

	"go.uber.org/zap"

	"github.com/twileloop/go-jetapi/pkg/auth"
	"github.com/twileloop/go-jetapi/pkg/client"
	"github.com/twileloop/go-jetapi/pkg/client/trace"
	"github.com/twileloop/go-jetapi/pkg/request"
)

type post struct {
	ID     int    `json:"id"`
	Title  string `json:"title"`
	UserID int    `json:"userId"`
}

func ExampleNewRequest() {
	ctx := context.TODO()

	// Send request
	res, err := request.NewRequest[[]post]().
		Get().
		WithQueries(request.NewParam("userId", 1)).
		WithAuthentication(auth.Bearer{Token: "<my-token>"}).
		Execute(ctx, "https://jsonplaceholder.typicode.com/posts")
	if err != nil {
		log.Fatal(err)
	}

	if res.IsSuccess {
		fmt.Printf("%#v", res.Response.Data)
	}
}

func ExampleRequest_WithBody() {
	ctx := context.TODO()

	body, err := request.NewBody(request.JSON, post{Title: "foo", UserID: 1})
	if err != nil {
		log.Fatal(err)
	}

	// Client with logging
	logger, _ := zap.NewDevelopment()
	c := client.New().
		WithBaseURL("https://jsonplaceholder.typicode.com").
		WithTrace(trace.ZapTracer(logger)).
		WithTrace(trace.LogTracer(os.Stderr))

	// Send request
	res, err := request.NewRequest[post](request.WithSender(c)).
		Post().
		WithBody(body).
		WithCaptures(func(res *request.Response[post]) {
			fmt.Printf("created %d", res.Response.Data.ID)
		}, func(res *request.Response[post]) {
			fmt.Printf("failed %d", res.StatusCode)
		}).
		HandleExceptions(func(err error) {
			log.Print(err)
		}).
		Execute(ctx, "/posts")
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println(res.Message)
}

func ExampleNewWaitGroup() {
	ctx := context.TODO()
	r := request.NewRequest[post]()

	// Send requests concurrently
	wg := request.NewWaitGroup(ctx)
	for _, id := range []int{1, 2, 3} {
		wg.Send(r.Bind(fmt.Sprintf("https://jsonplaceholder.typicode.com/posts/%d", id)))
	}

	if err := wg.Wait(); err != nil {
		log.Fatal(err)
	}
}
