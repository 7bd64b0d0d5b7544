// Package mqueue provides types, interfaces, and helpers for working with an
// HTTP message-queue service.
//
// # Overview
//
// The mqueue package defines the domain types (Queue, Message, Claim, Action),
// the error taxonomy for the service's REST protocol, and the Session
// interface through which queue operations are performed. A concrete Session
// implementation is provided by the mqclient package, which wires
// configuration, transport selection, and authentication. Most consumers
// should import mqclient to construct a session and then interact with the
// interfaces exposed here.
//
// Getting a session
//
//	import (
//	  "context"
//	  "log"
//
//	  "github.com/fivetwenty-io/mqueue/pkg/mqclient"
//	  "github.com/fivetwenty-io/mqueue/pkg/mqueue"
//	)
//
//	func example() {
//	  ctx := context.Background()
//	  session, err := mqclient.New(ctx, &mqueue.Config{
//	    ClientID: "0a9b2e5f-2fd1-4bcb-a0e7-ca8a3f22b395",
//	    Endpoint: "https://queues.example.com",
//	    Token:    "7c1a4f0e9d2b",
//	  })
//	  if err != nil { log.Fatal(err) }
//
//	  queue, err := session.CreateQueue(ctx, "events", 3600, nil)
//	  if err != nil { log.Fatal(err) }
//	  _ = queue
//	}
//
// # Listing queues
//
// GetQueues returns a lazy, finite, non-restartable iterator over queue
// handles, preserving the order returned by the service:
//
//	it, err := session.GetQueues(ctx, nil)
//	if err != nil { /* precondition failure */ }
//	for it.HasNext() {
//	  queue, err := it.Next()
//	  if err != nil { break }
//	  _ = queue
//	}
//
// # Errors
//
// Protocol errors are represented by ClientError; queue-addressed operations
// refine a 404 response into QueueNotFoundError. Helpers such as IsNotFound
// and IsClientError make it easy to branch on common cases without inspecting
// status codes.
package mqueue
