package sqlinline

const QInsertOrder = `--sql e708f9fd-32be-416a-b945-4ad07415496e
insert into orders(
  id,
  customer_name,
  customer_email,
  customer_phone,
  status,
  total_cents,
  currency,
  locale,
  created_at,
  updated_at
) values (
  $1::uuid,
  $2::text,
  $3::text,
  $4::text,
  'PENDING',
  $5::bigint,
  $6::text,
  $7::text,
  now(),
  now()
);
`

const QInsertOrderItem = `--sql 0a8ded6a-ac06-4274-a6ca-f7bb5793f687
insert into order_items(
  id,
  order_id,
  product_id,
  layout_id,
  quantity,
  unit_price_cents,
  slot_images,
  created_at
) values (
  $1::uuid,
  $2::uuid,
  $3::uuid,
  $4::uuid,
  $5::int,
  $6::bigint,
  $7::jsonb,
  now()
);
`

const QSelectOrderByID = `--sql d86f2e2d-7a74-4ab8-8ebb-80ff8d5090e8
select id, customer_name, customer_email, customer_phone, status, total_cents, currency, locale, created_at, updated_at
from orders
where id = $1::uuid
limit 1;
`

const QSelectOrderItems = `--sql 49d92a73-aa98-4ae2-bac4-6882475e52f8
select id, order_id, product_id, layout_id, quantity, unit_price_cents, slot_images, created_at
from order_items
where order_id = $1::uuid
order by created_at asc;
`

const QUpdateOrderStatus = `--sql 061f4671-61b3-41e5-b461-aa7b6e38558c
update orders
set status = $2::text, updated_at = now()
where id = $1::uuid;
`
